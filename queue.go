package duraq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mujahedk/duraq/job"
)

// ValidationError indicates that Enqueue was called with input that fails
// the queue's admission rules (empty type, type too long, max_attempts out
// of range). Field names the offending input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

// Enqueuer defines the write-side entry point of a queue.
type Enqueuer interface {

	// Enqueue admits a new job of jobType with the given payload, runnable
	// immediately, and returns its persisted snapshot.
	//
	// jobType must be non-empty and at most 64 bytes. maxAttempts must be
	// between 1 and 25 inclusive; implementations return a *ValidationError
	// otherwise.
	//
	// Implementations must persist the job durably before returning nil,
	// assigning Id, CreatedAt/UpdatedAt and an immediately-runnable RunAt.
	Enqueue(ctx context.Context, jobType string, payload json.RawMessage, maxAttempts int) (*job.Job, error)
}

// ListOptions filters Observer.List. A zero Status or empty Type means "no
// filter" on that field. A non-positive Limit means "use the
// implementation's default page size".
type ListOptions struct {
	Limit  int
	Status job.Status
	Type   string
}

// Observer provides read-only access to jobs stored in the queue.
//
// Observer does not modify job state and does not participate in lease or
// lifecycle transitions. It is intended for diagnostic, monitoring, and
// administrative use cases.
type Observer interface {

	// Get returns the job identified by id, or (nil, nil) if no such job
	// exists.
	Get(ctx context.Context, id uuid.UUID) (*job.Job, error)

	// List returns jobs matching opts, most recently created first, with a
	// stable tiebreak on id.
	List(ctx context.Context, opts ListOptions) ([]*job.Job, error)
}

// Claimer defines the read-write contract workers use to consume and
// finalize jobs.
//
// Claimer provides lease semantics similar to systems such as Amazon SQS:
// Claim transitions a job from Queued to Running and grants the caller a
// time-bounded lease; if the lease expires before MarkSucceeded or
// MarkFailed is called, the job becomes claimable again. The queue
// provides at-least-once delivery; handlers must be idempotent.
type Claimer interface {

	// Claim selects at most one runnable job — Queued with RunAt in the
	// past, or Running with an expired lease — and atomically transitions
	// it to Running, recording workerID in LockedBy and setting
	// LockedUntil to now + leaseSeconds. Claim never touches Attempts: the
	// returned Job's Attempts is the number of failed executions so far
	// (0 on a job's first claim), the value a handler should see before
	// this execution runs.
	//
	// Claim returns (nil, nil) if no job is currently runnable.
	Claim(ctx context.Context, workerID string, leaseSeconds time.Duration) (*job.Job, error)

	// MarkSucceeded transitions a Running job to Succeeded, recording
	// result and clearing its lease. MarkSucceeded is a no-op if the job
	// no longer exists or is no longer Running.
	MarkSucceeded(ctx context.Context, id uuid.UUID, result json.RawMessage) error

	// MarkFailed records errText as the job's last error and increments
	// Attempts for this failed execution: if the new Attempts has reached
	// MaxAttempts the job transitions to Dead, otherwise it is requeued
	// with RunAt advanced by Backoff(Attempts) and its lease cleared.
	//
	// MarkFailed is a no-op if the job no longer exists or is no longer
	// Running.
	MarkFailed(ctx context.Context, id uuid.UUID, errText string) error
}
