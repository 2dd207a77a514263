// Command marketsim runs the prediction-market trading simulation. It
// loads configuration, validates it, seeds the simulated population, and
// drives the tick loop until interrupted or the configured tick count is
// reached.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/alanyoungcy/marketsim/internal/config"
	"github.com/alanyoungcy/marketsim/internal/sim"
)

func main() {
	configPath := flag.String("config", "marketsim.toml", "path to configuration file")
	flag.Parse()

	// Setup structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration.
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config",
			slog.String("path", *configPath),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// Set log level from config.
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Validate configuration.
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("market simulation starting",
		slog.String("config", *configPath),
		slog.String("tick_interval", cfg.Simulation.TickInterval.String()),
		slog.Int("ticks", cfg.Simulation.Ticks),
	)

	// Setup signal handling for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	simulation := sim.New(cfg, logger)

	// The driver goroutine ticks the simulation; the reporter goroutine
	// consumes tick reports so logging never stalls a tick mid-match.
	reports := make(chan sim.TickReport, 16)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return simulation.Run(ctx, reports)
	})
	g.Go(func() error {
		for report := range reports {
			logger.Debug("tick complete",
				slog.Int("tick", report.Tick),
				slog.Int("new_orders", report.NewOrders),
				slog.Int("new_trades", report.NewTrades),
				slog.Int("pending", report.Pending),
			)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		// context.Canceled is expected on clean shutdown.
		if errors.Is(err, context.Canceled) {
			logger.Info("simulation shut down gracefully")
		} else {
			logger.Error("simulation exited with error",
				slog.String("error", err.Error()),
			)
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
			os.Exit(1)
		}
	}

	logger.Info("market simulation stopped")
}
