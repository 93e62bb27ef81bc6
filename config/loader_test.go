package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Store.Driver != "redis" {
		t.Fatalf("want redis driver, got %q", cfg.Store.Driver)
	}
	if cfg.Redis.Host != "localhost" || cfg.Redis.Port != 6379 {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Worker.SweepInterval() != 15*time.Second {
		t.Fatalf("want 15s sweep interval, got %s", cfg.Worker.SweepInterval())
	}
	if cfg.Worker.PacingDelay != 200*time.Millisecond || cfg.Worker.ErrorBackoff != 3*time.Second {
		t.Fatalf("unexpected worker defaults: %+v", cfg.Worker)
	}
	if cfg.Worker.MetricsPort != 9102 {
		t.Fatalf("want metrics port 9102, got %d", cfg.Worker.MetricsPort)
	}
	if cfg.HTTP.Timeout() != 5*time.Second {
		t.Fatalf("want 5s probe timeout, got %s", cfg.HTTP.Timeout())
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_PASSWORD", "s3cret")
	t.Setenv("WORKER_INTERVAL_DEFAULT", "42")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "1.5")
	t.Setenv("WORKER_METRICS_PORT", "9200")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Redis.Host != "redis.internal" || cfg.Redis.Port != 6380 || cfg.Redis.Password != "s3cret" {
		t.Fatalf("redis env not applied: %+v", cfg.Redis)
	}
	if cfg.Worker.IntervalDefault != 42 || cfg.Worker.MetricsPort != 9200 {
		t.Fatalf("worker env not applied: %+v", cfg.Worker)
	}
	if cfg.HTTP.Timeout() != 1500*time.Millisecond {
		t.Fatalf("want 1.5s timeout, got %s", cfg.HTTP.Timeout())
	}
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	body := "service_name: uptime-test\nworker:\n  pacing_delay: 50ms\napi:\n  port: 9000\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.ServiceName != "uptime-test" || cfg.API.Port != 9000 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Worker.PacingDelay != 50*time.Millisecond {
		t.Fatalf("want 50ms pacing, got %s", cfg.Worker.PacingDelay)
	}
}

func TestLoadConfig_MissingFileIsIgnored(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Fatalf("missing file should fall back to defaults, got %v", err)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
	}{
		{"bad driver", "STORE_DRIVER", "mongo"},
		{"postgres without url", "STORE_DRIVER", "postgres"},
		{"zero timeout", "HTTP_TIMEOUT_SECONDS", "0"},
		{"bad port", "API_PORT", "70000"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(c.key, c.val)
			_, err := LoadConfig("")
			if err == nil {
				t.Fatalf("want validation error for %s=%s", c.key, c.val)
			}
			if !strings.Contains(err.Error(), "config validation failed") {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
