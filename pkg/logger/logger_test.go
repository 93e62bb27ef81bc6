package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"uptime-monitor/config"
)

func testConfig(env, level string) *config.Config {
	return &config.Config{
		Env:         env,
		ServiceName: "uptime-worker",
		Log: config.LogConfig{
			Level:      level,
			MaxSizeMB:  1,
			MaxBackups: 1,
			MaxAgeDays: 1,
		},
	}
}

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(testConfig("production", "info"), &buf)

	log.Info().Str("monitor_id", "m-1").Msg("check completed")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["service"] != "uptime-worker" || entry["env"] != "production" {
		t.Fatalf("missing service fields: %v", entry)
	}
	if entry["monitor_id"] != "m-1" || entry["message"] != "check completed" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["caller"]; ok {
		t.Fatalf("caller must not be logged in production")
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(testConfig("production", "warn"), &buf)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("level filter not applied: %q", out)
	}
}

func TestNew_DevelopmentUsesConsole(t *testing.T) {
	var buf bytes.Buffer
	log := New(testConfig("development", "debug"), &buf)

	log.Debug().Msg("sweep completed")

	out := buf.String()
	if !strings.Contains(out, "[DEBUG]") || !strings.Contains(out, "sweep completed") {
		t.Fatalf("unexpected console output: %q", out)
	}
}

func TestNew_WritesRotatingFile(t *testing.T) {
	cfg := testConfig("production", "info")
	cfg.Log.File = filepath.Join(t.TempDir(), "worker.log")

	var buf bytes.Buffer
	log := New(cfg, &buf)
	log.Error().Msg("worker iteration failed")

	data, err := os.ReadFile(cfg.Log.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "worker iteration failed") {
		t.Fatalf("file missing entry: %q", data)
	}
	if !strings.Contains(buf.String(), "worker iteration failed") {
		t.Fatalf("stdout missing entry")
	}
}
