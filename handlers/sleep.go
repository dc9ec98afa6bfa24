// Package handlers provides the reference job handlers exercised by the
// worker loop: sleep, which simulates a unit of work of a given duration,
// and fail_n_times, which deterministically fails a configurable number
// of attempts before succeeding. Both are registered under their own
// job-type name.
package handlers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mujahedk/duraq/registry"
)

// SleepType is the job type dispatched to Sleep.
const SleepType = "sleep"

type sleepPayload struct {
	DurationMs int `json:"duration_ms"`
}

type sleepResult struct {
	SleptMs    int       `json:"slept_ms"`
	FinishedAt time.Time `json:"finished_at"`
}

// Sleep blocks for payload.duration_ms (default 1000ms) and reports how
// long it slept. It honors ctx cancellation so a worker shutdown does not
// block indefinitely.
func Sleep(ctx context.Context, payload json.RawMessage, hctx registry.Context) (json.RawMessage, error) {
	p := sleepPayload{DurationMs: 1000}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, err
		}
	}
	if p.DurationMs < 0 {
		p.DurationMs = 0
	}
	timer := time.NewTimer(time.Duration(p.DurationMs) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}
	return json.Marshal(sleepResult{
		SleptMs:    p.DurationMs,
		FinishedAt: hctx.Clock.Now(),
	})
}
