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

	// Load envs
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	// Done is closed on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize Base/global logger
	log := logger.Init(cfg)
	log.Info().Msg("logger initialized")

	// Inject Dependencies
	container, err := app.NewContainer(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize dependencies")
	}
	log.Info().Msg("dependencies initialized")

	// Register Routes
	router := app.RegisterRoutes(container)
	log.Info().Msg("routes registered")

	// Start HTTP Server, serves requests in the background
	srv := server.New(":"+strconv.Itoa(cfg.API.Port), router, log)
	srv.Start()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	// 1. Stop HTTP server (stop accepting requests)
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	// 2. Release the store
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := container.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("dependencies shutdown failed")
	}

	log.Info().Msg("graceful shutdown complete")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
