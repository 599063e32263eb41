// Package main is the entry point for the curate CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"curate/internal/backend/curateapi"
	"curate/internal/cli"
	"curate/internal/commands"
	"curate/internal/config"
	"curate/internal/logging"
	"curate/internal/metrics"
	"curate/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	reg := prometheus.NewRegistry()
	m := metrics.NewClient(reg)

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return curateapi.New(ctx, cfg,
			curateapi.WithLogger(logging.New(os.Stderr, cfg.Debug)),
			curateapi.WithMetrics(m),
		)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)
	dispatcher.SetGatherer(reg)

	// Run and exit with code
	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
