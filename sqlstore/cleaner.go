package sqlstore

import (
	"context"
	"time"

	"github.com/mujahedk/duraq"
	"github.com/mujahedk/duraq/job"
	"github.com/uptrace/bun"
)

// Cleaner implements duraq.Cleaner using a SQL backend.
//
// Cleaner permanently removes terminal jobs from storage. It is intended
// for retention management and administrative cleanup, invoked
// out-of-band from the Queue API. It deletes rows directly from the jobs
// table and does not participate in claim or processing logic.
type Cleaner struct {
	db *bun.DB
}

var _ duraq.Cleaner = (*Cleaner)(nil)

// NewCleaner creates a new SQL-backed Cleaner. db must be connected and
// have had InitDB run against it.
func NewCleaner(db *bun.DB) *Cleaner {
	return &Cleaner{db: db}
}

// Clean deletes jobs matching the provided status and time filter.
//
// Only terminal states (job.Succeeded, job.Dead) are allowed. If status is
// job.Unknown (zero value), both are eligible for deletion. If status
// refers to a non-terminal state, ErrBadStatus is returned.
//
// If before is non-nil, only jobs with updated_at <= *before are deleted.
//
// Clean returns the number of deleted rows and never touches Queued or
// Running jobs.
func (c *Cleaner) Clean(ctx context.Context, status job.Status, before *time.Time) (int64, error) {
	if status != job.Unknown && status != job.Dead && status != job.Succeeded {
		return 0, duraq.ErrBadStatus
	}
	query := c.db.NewDelete().Model((*jobModel)(nil))
	if status != job.Unknown {
		query = query.Where("status = ?", status)
	} else {
		query = query.Where("status IN (?, ?)", job.Succeeded, job.Dead)
	}
	if before != nil {
		query = query.Where("updated_at <= ?", before)
	}
	res, err := query.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return getAffected(res), nil
}
