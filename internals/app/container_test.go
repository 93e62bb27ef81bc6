package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"uptime-monitor/config"

	"github.com/rs/zerolog"
)

func unreachableConfig() *config.Config {
	return &config.Config{
		Env:         "test",
		ServiceName: "uptime-worker",
		API:         config.APIConfig{Port: 8000, CORSAllowedOrigins: []string{"*"}},
		Store:       config.StoreConfig{Driver: "redis"},
		Redis: config.RedisConfig{
			Host:         "127.0.0.1",
			Port:         1,
			DialTimeout:  200 * time.Millisecond,
			ReadTimeout:  200 * time.Millisecond,
			WriteTimeout: 200 * time.Millisecond,
			PoolSize:     1,
		},
		Worker: config.WorkerConfig{
			IntervalDefault: 15,
			MetricsPort:     9102,
			ErrorBackoff:    10 * time.Millisecond,
		},
		HTTP: config.HTTPConfig{TimeoutSeconds: 1},
	}
}

func workerErrors(t *testing.T, c *Container) float64 {
	t.Helper()

	families, err := c.Registry.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == "worker_errors_total" {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("worker_errors_total not registered")
	return 0
}

func TestNewContainer_StoreDownAtStartup(t *testing.T) {
	logger := zerolog.Nop()
	c, err := NewContainer(context.Background(), unreachableConfig(), &logger)
	if err != nil {
		t.Fatalf("NewContainer must tolerate an unreachable store: %v", err)
	}
	defer c.Shutdown(context.Background())

	rec := httptest.NewRecorder()
	RegisterRoutes(c).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz = %d, want 503", rec.Code)
	}

	w := NewWorker(c)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(3 * time.Second)
	for workerErrors(t, c) < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after cancel")
	}

	if got := workerErrors(t, c); got < 2 {
		t.Fatalf("worker_errors_total = %v, want at least 2", got)
	}
}
