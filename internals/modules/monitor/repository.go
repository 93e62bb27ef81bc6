package monitor

import "context"

// Repository is the durable store for monitors and their latest result.
// Implementations report an unreachable backend as
// apperror.StorageUnavailable and never retry on their own.
type Repository interface {
	AddMonitor(ctx context.Context, spec MonitorSpec) (Monitor, error)
	// ListMonitors returns monitors ordered by id. Ids whose record is gone
	// are skipped.
	ListMonitors(ctx context.Context) ([]Monitor, error)
	// GetMonitor returns nil when the monitor does not exist.
	GetMonitor(ctx context.Context, id string) (*Monitor, error)
	// DeleteMonitor removes the monitor and its last result and reports
	// whether the id was registered.
	DeleteMonitor(ctx context.Context, id string) (bool, error)
	// SaveLastResult overwrites the stored result for result.MonitorID.
	SaveLastResult(ctx context.Context, result CheckResult) error
	// GetLastResult returns nil when the monitor has not been checked yet.
	GetLastResult(ctx context.Context, id string) (*CheckResult, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
