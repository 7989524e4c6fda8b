package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/storefront/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override storefront config path (optional)")
	prefsPath := flag.String("prefs", "", "override prefs path (optional)")
	location := flag.String("open", "", `start location, e.g. "/search?category=Books" (optional)`)
	arrival := flag.Bool("arrival-order", false, "show listing results in the order they arrive")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:   *configPath,
		PrefsPath:    *prefsPath,
		Location:     *location,
		ArrivalOrder: *arrival,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "storefront: %v\n", err)
		return 1
	}
	return 0
}
