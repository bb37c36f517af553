package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/city-fighting/internal/app"
	"github.com/city-fighting/internal/config"
	"github.com/city-fighting/internal/delivery/cli"
	"github.com/city-fighting/internal/pkg/logger"
)

func main() {
	var application *app.App

	deps := func() (*cli.Deps, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}

		log, err := logger.NewStderr(cfg.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}

		application, err = app.New(cfg, log)
		if err != nil {
			return nil, err
		}

		return &cli.Deps{
			Aggregator: application.Aggregate,
			Comparator: application.Compare,
			Catalog:    application.Catalog,
			Housing:    application.Housing,
		}, nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCommand(deps).ExecuteContext(ctx)
	stop()

	if application != nil {
		_ = application.Logger.Sync()
		_ = application.Close()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
