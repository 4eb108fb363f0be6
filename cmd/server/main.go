package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"themepark/internal/cli"
	"themepark/internal/config"
)

func main() {
	// Load configuration
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Serve(ctx, cfg); err != nil {
		stop()
		os.Exit(1)
	}
}
