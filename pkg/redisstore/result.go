package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"uptime-monitor/internals/modules/monitor"
	"uptime-monitor/pkg/apperror"
	"uptime-monitor/pkg/utils"

	"github.com/redis/go-redis/v9"
)

func lastResultKey(monitorID string) string {
	return "results:last:" + monitorID
}

// SaveLastResult overwrites blindly; there is no checked_at comparison, so
// only one writer per monitor may exist.
func (c *Client) SaveLastResult(ctx context.Context, result monitor.CheckResult) error {
	const op string = "store.redis.save_last_result"

	data, err := json.Marshal(result)
	if err != nil {
		return apperror.New(apperror.Internal, op, err)
	}

	if err := c.rdb.Set(ctx, lastResultKey(result.MonitorID), data, 0).Err(); err != nil {
		return utils.WrapStoreError(op, err, c.logger)
	}
	return nil
}

func (c *Client) GetLastResult(ctx context.Context, monitorID string) (*monitor.CheckResult, error) {
	const op string = "store.redis.get_last_result"

	res, err := c.rdb.Get(ctx, lastResultKey(monitorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapStoreError(op, err, c.logger)
	}

	r, err := monitor.DecodeCheckResult(res)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
