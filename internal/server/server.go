// Package server exposes a catalog over the HTTP API that catalog.Client
// consumes.
package server

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/params"
)

// Backend is the catalog a server answers from.
type Backend interface {
	catalog.Fetcher
	catalog.CategoryLister
}

const (
	requestIDKey    = "requestID"
	shutdownTimeout = 5 * time.Second
)

// ErrorBody is the JSON body returned with every 4xx and 5xx response.
type ErrorBody struct {
	Message   string `json:"message"`
	Error     bool   `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// New builds the router. Handlers run on request goroutines and rely on b
// being safe for concurrent use.
func New(b Backend) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog())

	h := &handlers{backend: b}
	api := r.Group("/api")
	api.GET("/items", h.searchItems)
	api.GET("/items/:id", h.getItem)
	api.GET("/categories", h.categories)
	return r
}

// Run serves r on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, r http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("catalog api listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	return nil
}

type handlers struct {
	backend Backend
}

func (h *handlers) searchItems(c *gin.Context) {
	q, err := params.ParseQuery(params.Decode(c.Request.URL.RawQuery))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.backend.SearchItems(c.Request.Context(), q)
	if err != nil {
		log.Printf("search items: %v", err)
		fail(c, http.StatusInternalServerError, "search failed")
		return
	}
	if res.Data == nil {
		res.Data = []catalog.Item{}
	}
	c.JSON(http.StatusOK, res)
}

func (h *handlers) getItem(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		fail(c, http.StatusBadRequest, "item id required")
		return
	}
	item, err := h.backend.GetItem(c.Request.Context(), id)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		fail(c, http.StatusNotFound, "item not found")
		return
	case err != nil:
		log.Printf("get item %q: %v", id, err)
		fail(c, http.StatusInternalServerError, "lookup failed")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) categories(c *gin.Context) {
	names, err := h.backend.Categories(c.Request.Context())
	if err != nil {
		log.Printf("list categories: %v", err)
		fail(c, http.StatusInternalServerError, "category listing failed")
		return
	}
	if names == nil {
		names = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": names})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorBody{
		Message:   message,
		Error:     true,
		RequestID: c.GetString(requestIDKey),
	})
}

// requestID echoes the caller's X-Request-ID, minting one when absent.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(catalog.RequestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(catalog.RequestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s %d %s id=%s", c.Request.Method, c.Request.URL.RequestURI(), c.Writer.Status(), time.Since(start).Round(time.Microsecond), c.GetString(requestIDKey))
	}
}
