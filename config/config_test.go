package config_test

import (
	"testing"
	"time"

	"github.com/mujahedk/duraq/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DURAQ_WORKER_ID", "")
	t.Setenv("DURAQ_DSN", "")
	t.Setenv("DURAQ_SQLITE_PATH", "")
	t.Setenv("DURAQ_HTTP_ADDR", "")
	t.Setenv("DURAQ_POLL_INTERVAL", "")
	t.Setenv("DURAQ_LEASE_SECONDS", "")
	t.Setenv("DURAQ_WORKER_CONCURRENCY", "")

	cfg := config.Load()
	if cfg.SQLitePath != "duraq.db" {
		t.Fatalf("expected default sqlite path, got %q", cfg.SQLitePath)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Fatalf("expected default poll interval, got %v", cfg.PollInterval)
	}
	if cfg.LeaseSeconds != 30*time.Second {
		t.Fatalf("expected default lease, got %v", cfg.LeaseSeconds)
	}
	if cfg.WorkerConcurrency != 1 {
		t.Fatalf("expected default concurrency 1, got %d", cfg.WorkerConcurrency)
	}
	if cfg.WorkerID == "" {
		t.Fatal("expected a generated worker id")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DURAQ_WORKER_ID", "worker-7")
	t.Setenv("DURAQ_DSN", "postgres://localhost/duraq")
	t.Setenv("DURAQ_HTTP_ADDR", ":9090")
	t.Setenv("DURAQ_POLL_INTERVAL", "2s")
	t.Setenv("DURAQ_LEASE_SECONDS", "1m")
	t.Setenv("DURAQ_WORKER_CONCURRENCY", "4")

	cfg := config.Load()
	if cfg.WorkerID != "worker-7" {
		t.Fatalf("expected worker-7, got %q", cfg.WorkerID)
	}
	if cfg.DSN != "postgres://localhost/duraq" {
		t.Fatalf("expected DSN override, got %q", cfg.DSN)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected http addr override, got %q", cfg.HTTPAddr)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("expected poll interval override, got %v", cfg.PollInterval)
	}
	if cfg.LeaseSeconds != time.Minute {
		t.Fatalf("expected lease override, got %v", cfg.LeaseSeconds)
	}
	if cfg.WorkerConcurrency != 4 {
		t.Fatalf("expected concurrency override, got %d", cfg.WorkerConcurrency)
	}
}

func TestLoadIgnoresInvalidDuration(t *testing.T) {
	t.Setenv("DURAQ_POLL_INTERVAL", "not-a-duration")
	cfg := config.Load()
	if cfg.PollInterval != 500*time.Millisecond {
		t.Fatalf("expected fallback to default on invalid duration, got %v", cfg.PollInterval)
	}
}
