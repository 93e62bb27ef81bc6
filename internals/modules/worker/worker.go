package worker

import (
	"context"
	"fmt"
	"time"
	"uptime-monitor/config"
	"uptime-monitor/internals/modules/monitor"

	"github.com/rs/zerolog"
)

// Store is the part of the monitor repository the worker needs.
type Store interface {
	ListMonitors(ctx context.Context) ([]monitor.Monitor, error)
	SaveLastResult(ctx context.Context, result monitor.CheckResult) error
}

type Prober interface {
	Probe(ctx context.Context, m monitor.Monitor) monitor.CheckResult
}

// Observer receives check outcomes and loop failures, usually a metrics sink.
type Observer interface {
	CheckCompleted(ok bool, latency time.Duration)
	IterationFailed()
}

type Options struct {
	Interval     time.Duration
	PacingDelay  time.Duration
	ErrorBackoff time.Duration
}

func OptionsFromConfig(cfg *config.WorkerConfig) Options {
	return Options{
		Interval:     cfg.SweepInterval(),
		PacingDelay:  cfg.PacingDelay,
		ErrorBackoff: cfg.ErrorBackoff,
	}
}

// Worker sweeps every monitor sequentially on one shared cadence and
// stores the latest outcome of each.
type Worker struct {
	store    Store
	prober   Prober
	observer Observer
	opts     Options
	logger   *zerolog.Logger
}

func NewWorker(store Store, prober Prober, observer Observer, opts Options, logger *zerolog.Logger) *Worker {
	return &Worker{
		store:    store,
		prober:   prober,
		observer: observer,
		opts:     opts,
		logger:   logger,
	}
}

// Run loops until ctx is cancelled. Storage failures and panics are counted,
// logged and retried after the error backoff, they never stop the loop.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info().
		Dur("interval", w.opts.Interval).
		Dur("pacing_delay", w.opts.PacingDelay).
		Msg("worker started")

	for {
		checked, err := w.iterate(ctx)
		if ctx.Err() != nil {
			w.logger.Info().Msg("worker stopped")
			return
		}

		if err != nil {
			w.observer.IterationFailed()
			w.logger.Error().
				Err(err).
				Int("checked", checked).
				Dur("backoff", w.opts.ErrorBackoff).
				Msg("worker iteration failed")

			if !sleep(ctx, w.opts.ErrorBackoff) {
				w.logger.Info().Msg("worker stopped")
				return
			}
			continue
		}

		if checked == 0 {
			w.logger.Debug().Msg("no monitors registered")
		} else {
			w.logger.Debug().Int("checked", checked).Msg("sweep completed")
		}

		if !sleep(ctx, w.opts.Interval) {
			w.logger.Info().Msg("worker stopped")
			return
		}
	}
}

// iterate runs one sweep and turns a panic into an iteration error.
func (w *Worker) iterate(ctx context.Context) (checked int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker iteration panicked: %v", r)
		}
	}()

	return w.Sweep(ctx)
}

// Sweep probes every registered monitor once, in list order, and returns
// how many results were stored. A probe cut short by cancellation is
// dropped instead of being recorded as a failure.
func (w *Worker) Sweep(ctx context.Context) (int, error) {
	monitors, err := w.store.ListMonitors(ctx)
	if err != nil {
		return 0, err
	}

	checked := 0
	for _, m := range monitors {
		if err := ctx.Err(); err != nil {
			return checked, err
		}

		result := w.prober.Probe(ctx, m)
		if err := ctx.Err(); err != nil {
			return checked, err
		}

		if err := w.store.SaveLastResult(ctx, result); err != nil {
			return checked, err
		}
		checked++

		w.observer.CheckCompleted(result.OK, time.Duration(result.LatencyMs*float64(time.Millisecond)))

		w.logger.Debug().
			Str("monitor_id", m.ID).
			Bool("ok", result.OK).
			Float64("latency_ms", result.LatencyMs).
			Msg("check completed")

		if !sleep(ctx, w.opts.PacingDelay) {
			return checked, ctx.Err()
		}
	}

	return checked, nil
}

// sleep waits for d or until ctx is done and reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
