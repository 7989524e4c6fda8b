package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/five82/storefront/internal/params"
)

// Ensure Client implements Fetcher and CategoryLister at compile time.
var (
	_ Fetcher        = (*Client)(nil)
	_ CategoryLister = (*Client)(nil)
)

// RequestIDHeader carries a per-request identifier between client and server.
const RequestIDHeader = "X-Request-ID"

// Client talks to the catalog HTTP API served by catalogd.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultAPIBind   = "127.0.0.1:7488"
	defaultUserAgent = "storefront/0.1"
	requestTimeout   = 5 * time.Second
)

// NewClient builds a Client using the provided apiBind host:port value.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// GetItem retrieves a single item by id.
func (c *Client) GetItem(ctx context.Context, id string) (Item, error) {
	if c == nil {
		return Item{}, errors.New("client is nil")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Item{}, errors.New("item id required")
	}
	rel := &url.URL{Path: "/api/items/" + url.PathEscape(id)}
	var payload Item
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return Item{}, err
	}
	return payload, nil
}

// SearchItems retrieves one page of items matching q.
func (c *Client) SearchItems(ctx context.Context, q params.Query) (SearchResult, error) {
	if c == nil {
		return SearchResult{}, errors.New("client is nil")
	}
	rel := &url.URL{Path: "/api/items", RawQuery: params.Encode(q.Mapping())}
	var payload SearchResult
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return SearchResult{}, err
	}
	return payload, nil
}

// Categories lists the category names known to the server.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, errors.New("client is nil")
	}
	var payload struct {
		Categories []string `json:"categories"`
	}
	if err := c.doURL(ctx, http.MethodGet, &url.URL{Path: "/api/categories"}, &payload); err != nil {
		return nil, err
	}
	return payload.Categories, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return errors.Wrapf(ErrNotFound, "api %s", rel.String())
	}
	if resp.StatusCode >= 400 {
		return errors.Errorf("api %s returned status %d", rel.String(), resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, errors.Wrapf(err, "parse api_bind %q", apiBind)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
