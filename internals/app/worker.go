package app

import (
	"uptime-monitor/internals/modules/executor"
	"uptime-monitor/internals/modules/worker"
	"uptime-monitor/pkg/metrics"
)

// NewWorker wires the check loop to the store, a probe executor and the
// worker metrics.
func NewWorker(c *Container) *worker.Worker {
	exec := executor.NewExecutor(c.Config.HTTP.Timeout())
	workerMetrics := metrics.NewWorkerMetrics(c.Registry)

	c.Logger.Info().Dur("probe_timeout", exec.Timeout()).Msg("check executor initialized")

	return worker.NewWorker(
		c.Store,
		exec,
		workerMetrics,
		worker.OptionsFromConfig(&c.Config.Worker),
		c.Logger,
	)
}
