package sqlstore

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/mujahedk/duraq"
	"github.com/mujahedk/duraq/clock"
	"github.com/mujahedk/duraq/job"
	"github.com/uptrace/bun"
)

const (
	maxTypeLen     = 64
	minMaxAttempts = 1
	maxMaxAttempts = 25
)

// Enqueuer implements duraq.Enqueuer using a SQL backend.
//
// Enqueuer inserts new jobs into storage in the Queued state, immediately
// runnable. It performs no deduplication; callers relying on idempotent
// admission must enforce that themselves.
type Enqueuer struct {
	db    *bun.DB
	clock clock.Clock
}

var _ duraq.Enqueuer = (*Enqueuer)(nil)

// NewEnqueuer creates a new SQL-backed Enqueuer. db must be connected and
// have had InitDB run against it.
func NewEnqueuer(db *bun.DB, c clock.Clock) *Enqueuer {
	if c == nil {
		c = clock.System()
	}
	return &Enqueuer{db: db, clock: c}
}

// Enqueue validates jobType and maxAttempts, then inserts a new job
// immediately runnable.
func (e *Enqueuer) Enqueue(ctx context.Context, jobType string, payload json.RawMessage, maxAttempts int) (*job.Job, error) {
	if jobType == "" {
		return nil, &duraq.ValidationError{Field: "type", Reason: "must not be empty"}
	}
	if len(jobType) > maxTypeLen {
		return nil, &duraq.ValidationError{Field: "type", Reason: "must not exceed 64 bytes"}
	}
	if maxAttempts < minMaxAttempts || maxAttempts > maxMaxAttempts {
		return nil, &duraq.ValidationError{Field: "max_attempts", Reason: "must be between 1 and 25"}
	}
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	now := e.clock.Now()
	model := &jobModel{
		Id:          uuid.New(),
		Type:        jobType,
		Payload:     payload,
		Status:      job.Queued,
		Attempts:    0,
		MaxAttempts: maxAttempts,
		RunAt:       now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := e.db.NewInsert().Model(model).Exec(ctx); err != nil {
		return nil, err
	}
	return model.toJob(), nil
}
