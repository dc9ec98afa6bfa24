// Package config loads duraqd's runtime configuration from the
// environment, with defaults suitable for local development against the
// embedded SQLite store.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds duraqd's runtime configuration.
//
// Precedence: environment variables override the defaults below. There
// is no config file layer — a single binary with env-driven config is
// enough for an operator to run one or many duraqd processes.
type Config struct {
	// WorkerID identifies this process in locked_by. Read from
	// DURAQ_WORKER_ID, then WORKER_ID; defaults to a hostname-derived
	// value if both are unset.
	WorkerID string

	// DSN is a Postgres connection string. If set, duraqd uses Postgres;
	// otherwise it falls back to SQLitePath.
	DSN string

	// SQLitePath is the embedded SQLite database file path, used only
	// when DSN is empty.
	SQLitePath string

	// HTTPAddr is the bind address for the admission API, e.g. ":8080".
	HTTPAddr string

	// PollInterval is how long a Worker sleeps after an idle Claim.
	PollInterval time.Duration

	// LeaseSeconds is the lease duration granted to each claimed job.
	LeaseSeconds time.Duration

	// WorkerConcurrency is how many Worker instances the serve command
	// runs. duraq.Worker itself never fans out internally; this is the
	// only supported dimension for scaling throughput in one process.
	WorkerConcurrency int
}

// Load reads configuration from the environment, falling back to
// defaults for anything unset.
func Load() *Config {
	workerID := os.Getenv("DURAQ_WORKER_ID")
	if workerID == "" {
		workerID = os.Getenv("WORKER_ID")
	}
	if workerID == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "duraqd"
		}
		workerID = fmt.Sprintf("%s-%d", host, os.Getpid())
	}

	cfg := &Config{
		WorkerID:          workerID,
		DSN:               os.Getenv("DURAQ_DSN"),
		SQLitePath:        getenvDefault("DURAQ_SQLITE_PATH", "duraq.db"),
		HTTPAddr:          getenvDefault("DURAQ_HTTP_ADDR", ":8080"),
		PollInterval:      getenvDuration("DURAQ_POLL_INTERVAL", 500*time.Millisecond),
		LeaseSeconds:      getenvDuration("DURAQ_LEASE_SECONDS", 30*time.Second),
		WorkerConcurrency: getenvInt("DURAQ_WORKER_CONCURRENCY", 1),
	}
	return cfg
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
