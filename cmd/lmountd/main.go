// Package main is the entry point for the mount control daemon.
package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rockit-astro/lmountd/internal/config"
	"github.com/rockit-astro/lmountd/internal/daemon"
	"github.com/rockit-astro/lmountd/internal/environment"
	"github.com/rockit-astro/lmountd/internal/registry"
	"github.com/rockit-astro/lmountd/internal/server"
	"github.com/rockit-astro/lmountd/internal/telemetry"
)

func main() {
	env := environment.New()

	configPath := flag.String("config", env.ConfigPath, "Path to the JSON configuration file")
	bindAddr := flag.String("bind", env.BindAddr, "HTTP API bind address")
	brokerURL := flag.String("broker-url", env.BrokerURL, "MQTT broker URL for status telemetry (empty disables)")
	statusInterval := flag.Duration("status-interval", 10*time.Second, "Telemetry publish interval")
	logLevel := flag.String("log-level", env.LogLevel, "Log level (debug, info, warn, error)")
	flag.Parse()

	var logger *zap.Logger
	var err error
	switch *logLevel {
	case "debug":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer logger.Sync()

	if *configPath == "" {
		logger.Fatal("No configuration file given (use -config or LMOUNTD_CONFIG)")
	}

	cfg, err := config.NewLoader(registry.Default()).Load(*configPath)
	if err != nil {
		var fileErr *config.FileError
		var parseErr *config.ParseError
		switch {
		case errors.As(err, &fileErr):
			logger.Fatal("Cannot read configuration file", zap.Error(err))
		case errors.As(err, &parseErr):
			logger.Fatal("Configuration file is not valid JSON", zap.Error(err))
		case errors.Is(err, config.ErrInvalidConfig):
			logger.Fatal("Configuration file failed validation", zap.Error(err))
		default:
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
	}

	logger.Info("Configuration loaded",
		zap.String("daemon", cfg.Daemon.Name),
		zap.String("pwi_host", cfg.PWIHost),
		zap.Int("pwi_port", cfg.PWIPort),
		zap.Int("control_machines", len(cfg.ControlIPs)),
		zap.Int("park_positions", len(cfg.ParkPositions)))

	d := daemon.New(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *brokerURL != "" {
		client := telemetry.NewClient(telemetry.ClientConfig{
			BrokerURL: *brokerURL,
			ClientID:  cfg.Daemon.Name,
		}, logger)

		if err := client.Connect(); err != nil {
			logger.Warn("Telemetry disabled: cannot reach broker", zap.Error(err))
		} else {
			defer client.Disconnect()
			go telemetry.NewPublisher(client, d, logger, *statusInterval).Run(ctx)
		}
	}

	if err := server.New(d, logger, *bindAddr).Run(ctx); err != nil {
		logger.Fatal("API server failed", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}
