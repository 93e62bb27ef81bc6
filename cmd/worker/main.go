package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"uptime-monitor/config"
	"uptime-monitor/internals/app"
	"uptime-monitor/internals/server"
	"uptime-monitor/pkg/logger"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_FILE", "env.yaml"), "path to optional yaml config")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Init(cfg)
	log.Info().Msg("logger initialized")

	container, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize dependencies")
	}

	w := app.NewWorker(container)

	// metrics and health on their own port
	srv := server.New(":"+strconv.Itoa(cfg.Worker.MetricsPort), app.RegisterWorkerRoutes(container), log)
	srv.Start()

	// Run returns once ctx is cancelled
	w.Run(ctx)

	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("metrics server shutdown failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := container.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("dependencies shutdown failed")
	}

	log.Info().Msg("worker shutdown complete")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
