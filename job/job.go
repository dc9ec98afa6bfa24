package job

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job represents a single unit of work managed by the queue storage.
//
// Id is assigned at enqueue time and is stable for the job's lifetime.
// Type selects the Handler a worker dispatches the job to.
// Payload is opaque to the queue; only the handler interprets it.
// Result is set by MarkSucceeded and is nil until the job succeeds.
//
// CreatedAt records when the job was initially enqueued.
// UpdatedAt records the last state transition or modification.
//
// Status represents the current state in the job lifecycle.
// Attempts counts how many executions of this job have failed so far; it
// is incremented by MarkFailed, never by Claim. A handler sees Attempts
// before its own execution runs, so it reads 0 on a job's first try.
// MaxAttempts bounds the number of retries before the job is dead-lettered.
// LockedBy identifies the worker currently holding the lease, if any.
// LockedUntil defines the lease; while set and in the future, the job is
// considered owned by a worker.
// RunAt specifies the earliest time the job may be claimed.
// LastError holds the error text from the most recent failed attempt.
//
// Job instances should be treated as snapshots of storage state. Mutating
// fields directly does not change the underlying queue state; transitions
// must be performed through the Claimer interface.
type Job struct {
	Id      uuid.UUID       `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	Result  json.RawMessage `json:"result,omitempty"`

	Status      Status     `json:"status"`
	Attempts    int        `json:"attempts"`
	MaxAttempts int        `json:"max_attempts"`
	RunAt       time.Time  `json:"run_at"`
	LockedBy    *string    `json:"locked_by,omitempty"`
	LockedUntil *time.Time `json:"locked_until,omitempty"`
	LastError   *string    `json:"last_error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
