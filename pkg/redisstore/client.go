package redisstore

import (
	"context"
	"net"
	"strconv"
	"time"
	"uptime-monitor/config"
	"uptime-monitor/pkg/utils"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Client is the redis backed monitor repository.
type Client struct {
	rdb    *redis.Client
	logger *zerolog.Logger
}

// New builds the client and checks connectivity once. An unreachable server
// is logged, not returned: every call reports storage_unavailable until it
// comes back, and callers decide how to wait.
func New(cfg *config.RedisConfig, logger *zerolog.Logger) *Client {
	opt := &redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Password: cfg.Password,
		DB:       cfg.DB,

		// Timeouts
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,

		// Pool tuning
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// Connection lifecycle
		ConnMaxLifetime: 2 * time.Minute,
		ConnMaxIdleTime: 30 * time.Second,

		// one attempt per call, retry policy belongs to the caller
		MaxRetries: -1,

		DisableIdentity: true,
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn().
			Err(err).
			Str("addr", opt.Addr).
			Msg("redis unreachable at startup, continuing")
	} else {
		logger.Info().Str("addr", opt.Addr).Msg("connected to redis")
	}

	return &Client{rdb: rdb, logger: logger}
}

func (c *Client) Ping(ctx context.Context) error {
	const op string = "store.redis.ping"

	return utils.WrapStoreError(op, c.rdb.Ping(ctx).Err(), c.logger)
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
