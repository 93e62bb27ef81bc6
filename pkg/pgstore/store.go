package pgstore

import (
	"context"
	"errors"
	"time"
	"uptime-monitor/internals/modules/monitor"
	"uptime-monitor/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

var _ monitor.Repository = (*Store)(nil)

// Store is the postgres backed monitor repository.
type Store struct {
	pool   *pgxpool.Pool
	logger *zerolog.Logger
}

func New(pool *pgxpool.Pool, logger *zerolog.Logger) *Store {
	return &Store{
		pool:   pool,
		logger: logger,
	}
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	const op string = "store.pg.migrate"

	_, err := s.pool.Exec(ctx, schemaSQL)
	return utils.WrapStoreError(op, err, s.logger)
}

func (s *Store) Ping(ctx context.Context) error {
	const op string = "store.pg.ping"

	return utils.WrapStoreError(op, s.pool.Ping(ctx), s.logger)
}

func (s *Store) AddMonitor(ctx context.Context, spec monitor.MonitorSpec) (monitor.Monitor, error) {
	const op string = "store.pg.add_monitor"

	m, err := monitor.NewMonitor(spec)
	if err != nil {
		return monitor.Monitor{}, err
	}
	// timestamptz keeps microseconds
	m.CreatedAt = m.CreatedAt.Truncate(time.Microsecond)

	_, err = s.pool.Exec(ctx,
		`INSERT INTO monitors (id, url, interval_seconds, tags, created_at) VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.URL, m.IntervalSeconds, m.Tags, m.CreatedAt,
	)
	if err != nil {
		return monitor.Monitor{}, utils.WrapStoreError(op, err, s.logger)
	}
	return m, nil
}

func (s *Store) ListMonitors(ctx context.Context) ([]monitor.Monitor, error) {
	const op string = "store.pg.list_monitors"

	rows, err := s.pool.Query(ctx,
		`SELECT id, url, interval_seconds, tags, created_at FROM monitors ORDER BY id COLLATE "C"`,
	)
	if err != nil {
		return nil, utils.WrapStoreError(op, err, s.logger)
	}

	out, err := pgx.CollectRows(rows, scanMonitor)
	if err != nil {
		return nil, utils.WrapStoreError(op, err, s.logger)
	}
	if out == nil {
		out = []monitor.Monitor{}
	}
	return out, nil
}

func (s *Store) GetMonitor(ctx context.Context, id string) (*monitor.Monitor, error) {
	const op string = "store.pg.get_monitor"

	rows, err := s.pool.Query(ctx,
		`SELECT id, url, interval_seconds, tags, created_at FROM monitors WHERE id = $1`, id,
	)
	if err != nil {
		return nil, utils.WrapStoreError(op, err, s.logger)
	}

	m, err := pgx.CollectExactlyOneRow(rows, scanMonitor)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapStoreError(op, err, s.logger)
	}
	return &m, nil
}

func (s *Store) DeleteMonitor(ctx context.Context, id string) (bool, error) {
	const op string = "store.pg.delete_monitor"

	tag, err := s.pool.Exec(ctx, `DELETE FROM monitors WHERE id = $1`, id)
	if err != nil {
		return false, utils.WrapStoreError(op, err, s.logger)
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM monitor_last_results WHERE monitor_id = $1`, id); err != nil {
		return false, utils.WrapStoreError(op, err, s.logger)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *Store) SaveLastResult(ctx context.Context, r monitor.CheckResult) error {
	const op string = "store.pg.save_last_result"

	_, err := s.pool.Exec(ctx, `
INSERT INTO monitor_last_results (monitor_id, url, ok, status_code, latency_ms, checked_at, error)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (monitor_id) DO UPDATE SET
  url = EXCLUDED.url,
  ok = EXCLUDED.ok,
  status_code = EXCLUDED.status_code,
  latency_ms = EXCLUDED.latency_ms,
  checked_at = EXCLUDED.checked_at,
  error = EXCLUDED.error`,
		r.MonitorID, r.URL, r.OK, utils.ToPgInt4(r.StatusCode), r.LatencyMs, r.CheckedAt, utils.ToPgText(r.Error),
	)
	return utils.WrapStoreError(op, err, s.logger)
}

func (s *Store) GetLastResult(ctx context.Context, monitorID string) (*monitor.CheckResult, error) {
	const op string = "store.pg.get_last_result"

	var (
		r      monitor.CheckResult
		status pgtype.Int4
		cause  pgtype.Text
	)
	err := s.pool.QueryRow(ctx, `
SELECT monitor_id, url, ok, status_code, latency_ms, checked_at, error
FROM monitor_last_results WHERE monitor_id = $1`, monitorID,
	).Scan(&r.MonitorID, &r.URL, &r.OK, &status, &r.LatencyMs, &r.CheckedAt, &cause)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.WrapStoreError(op, err, s.logger)
	}

	r.StatusCode = utils.FromPgInt4(status)
	r.Error = utils.FromPgText(cause)
	r.CheckedAt = r.CheckedAt.UTC()
	return &r, nil
}

func scanMonitor(row pgx.CollectableRow) (monitor.Monitor, error) {
	var m monitor.Monitor
	if err := row.Scan(&m.ID, &m.URL, &m.IntervalSeconds, &m.Tags, &m.CreatedAt); err != nil {
		return monitor.Monitor{}, err
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}
