package duraq

import (
	"context"
	"errors"
	"time"

	"github.com/mujahedk/duraq/job"
)

var (
	// ErrBadStatus indicates that an invalid job status was supplied to Cleaner.
	//
	// Cleaner implementations are expected to restrict deletion to terminal
	// states (Succeeded or Dead). Supplying a non-terminal status such as
	// Queued or Running results in ErrBadStatus.
	ErrBadStatus = errors.New("bad job status")
)

// Cleaner provides a mechanism for permanently removing terminal jobs from
// storage. It is administrative: it never touches Queued or Running rows,
// so it never competes with the state machine in queue.go. Unlike the core
// Queue API, Cleaner is not part of spec.md's Queue API surface; it exists
// purely so a deployment has a bounded-growth story for the jobs table.
type Cleaner interface {

	// Clean deletes jobs matching the given status and time condition.
	//
	// If status is job.Unknown (zero value), both Succeeded and Dead jobs
	// are eligible for deletion. If status refers to a non-terminal state,
	// ErrBadStatus is returned.
	//
	// If before is non-nil, only jobs whose UpdatedAt is <= *before are
	// deleted. If before is nil, no time-based filtering is applied.
	//
	// Clean returns the number of deleted jobs. It never deletes Queued or
	// Running rows.
	Clean(ctx context.Context, status job.Status, before *time.Time) (int64, error)
}
