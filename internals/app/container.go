package app

import (
	"context"
	"fmt"
	"uptime-monitor/config"
	"uptime-monitor/internals/modules/monitor"
	"uptime-monitor/pkg/db"
	"uptime-monitor/pkg/metrics"
	"uptime-monitor/pkg/pgstore"
	"uptime-monitor/pkg/redisstore"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Store is a monitor repository that can also report its own health.
type Store interface {
	monitor.Repository
	monitor.Pinger
}

// Container holds the dependencies shared by the api and worker processes.
// Each process builds its own, so each gets a private metrics registry.
type Container struct {
	Config   *config.Config
	Logger   *zerolog.Logger
	Store    Store
	Registry *prometheus.Registry

	redisClient *redisstore.Client
	dbPool      *pgxpool.Pool
}

func NewContainer(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Container, error) {
	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Registry: metrics.NewRegistry(),
	}

	switch cfg.Store.Driver {
	case "postgres":
		pool, err := db.ConnectToDB(ctx, &cfg.DB, logger)
		if err != nil {
			return nil, err
		}

		store := pgstore.New(pool, logger)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate schema: %w", err)
		}

		c.dbPool = pool
		c.Store = store

	default:
		client := redisstore.New(&cfg.Redis, logger)
		c.redisClient = client
		c.Store = client
	}

	logger.Info().Str("driver", cfg.Store.Driver).Msg("monitor store initialized")
	return c, nil
}

func (c *Container) Shutdown(ctx context.Context) error {
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			return fmt.Errorf("close redis: %w", err)
		}
	}

	if c.dbPool != nil {
		c.dbPool.Close()
	}
	return nil
}
