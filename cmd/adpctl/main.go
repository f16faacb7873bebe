package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/fantasy-league-hub/internal/app"
	"github.com/riskibarqy/fantasy-league-hub/internal/config"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdout, loadServices)
	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// loadServices wires the same use case layer as the api, with warn-level logs on stderr.
func loadServices(ctx context.Context) (*app.Services, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if logging.ParseLevel(level) < logging.LevelWarn {
		level = "warn"
	}
	logger := logging.New(logging.Options{
		Level:   level,
		Format:  "console",
		Service: "adpctl",
		Env:     cfg.AppEnv,
	})
	logging.SetDefault(logger)

	return app.NewServices(ctx, cfg, logger)
}
