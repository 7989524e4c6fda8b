package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/five82/storefront/internal/catalog"
	"github.com/five82/storefront/internal/config"
	"github.com/five82/storefront/internal/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override storefront config path (optional)")
	addr := flag.String("addr", "", "listen address (optional, defaults to api_bind)")
	seed := flag.String("seed", "", "TOML seed file (optional, defaults to seed_file or the sample catalog)")
	debug := flag.Bool("debug", false, "run gin in debug mode")
	flag.Parse()

	if !*debug {
		gin.SetMode(gin.ReleaseMode)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalogd: load config: %v\n", err)
		return 1
	}

	listen := cfg.APIBind
	if *addr != "" {
		listen = *addr
	}
	seedPath := cfg.SeedFile
	if *seed != "" {
		seedPath = *seed
	}

	items := catalog.SampleItems()
	if seedPath != "" {
		if items, err = catalog.LoadSeed(seedPath); err != nil {
			fmt.Fprintf(os.Stderr, "catalogd: %v\n", err)
			return 1
		}
	}
	log.Printf("serving %d items", len(items))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := server.Run(ctx, listen, server.New(catalog.NewMemory(items, cfg.Latency))); err != nil {
		fmt.Fprintf(os.Stderr, "catalogd: %v\n", err)
		return 1
	}
	return 0
}
