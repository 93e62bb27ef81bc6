package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry returns a registry with the Go runtime and process collectors.
// Each process owns one and exposes it on /metrics.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// APIMetrics records request volume and latency for the API process.
type APIMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	m := &APIMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total API requests",
		}, []string{"path", "method"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_request_latency_seconds",
			Help:    "API request latency seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"path"}),
	}
	reg.MustRegister(m.requests, m.latency)
	return m
}

func (m *APIMetrics) Observe(method, path string, duration time.Duration) {
	m.requests.WithLabelValues(path, method).Inc()
	m.latency.WithLabelValues(path).Observe(duration.Seconds())
}

// WorkerMetrics records check outcomes, probe latency and loop failures.
type WorkerMetrics struct {
	checks  *prometheus.CounterVec
	latency prometheus.Histogram
	errors  prometheus.Counter
}

func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	m := &WorkerMetrics{
		checks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_checks_total",
			Help: "Total URL checks performed",
		}, []string{"ok"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_check_latency_seconds",
			Help:    "URL check latency seconds",
			Buckets: prometheus.DefBuckets,
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "worker_errors_total",
			Help: "Worker errors total",
		}),
	}
	reg.MustRegister(m.checks, m.latency, m.errors)
	return m
}

func (m *WorkerMetrics) CheckCompleted(ok bool, latency time.Duration) {
	m.checks.WithLabelValues(strconv.FormatBool(ok)).Inc()
	m.latency.Observe(latency.Seconds())
}

func (m *WorkerMetrics) IterationFailed() {
	m.errors.Inc()
}
