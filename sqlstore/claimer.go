package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mujahedk/duraq"
	"github.com/mujahedk/duraq/clock"
	"github.com/mujahedk/duraq/job"
	"github.com/uptrace/bun"
)

// Claimer implements duraq.Claimer using a SQL backend.
//
// Claim performs the selection and the state transition inside a single
// transaction: it selects a runnable row — locking it against other
// concurrent claimers with "FOR UPDATE SKIP LOCKED" on dialects that
// support it — then updates that row to Running in the same transaction.
// SQLite's single-writer model (Store is expected to run with a
// single-connection pool, see OpenSQLite) makes the locking clause both
// unsupported syntax and unnecessary there; the transaction alone
// serializes claimers.
type Claimer struct {
	db    *bun.DB
	clock clock.Clock
}

var _ duraq.Claimer = (*Claimer)(nil)

// NewClaimer creates a new SQL-backed Claimer. db must be connected and
// have had InitDB run against it.
func NewClaimer(db *bun.DB, c clock.Clock) *Claimer {
	if c == nil {
		c = clock.System()
	}
	return &Claimer{db: db, clock: c}
}

// Claim selects at most one runnable job and transitions it to Running.
//
// A job is runnable if it is Queued with run_at <= now, or Running with an
// expired locked_until (a worker that claimed it crashed or was killed
// before finishing). Claim sets locked_by to workerID and locked_until to
// now + leaseSeconds. It never touches attempts: attempts is incremented
// only by MarkFailed, on an actual failed execution, so a handler sees the
// pre-execution attempt count (0 on first try) via registry.Context.
//
// Claim returns (nil, nil) if no job is currently runnable.
func (c *Claimer) Claim(ctx context.Context, workerID string, leaseSeconds time.Duration) (*job.Job, error) {
	now := c.clock.Now()
	lockedUntil := now.Add(leaseSeconds)
	var result *job.Job
	err := c.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var row struct {
			Id uuid.UUID
		}
		q := tx.NewSelect().
			Model((*jobModel)(nil)).
			Column("id").
			WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
				return sq.
					Where("status = ? AND run_at <= ?", job.Queued, now).
					WhereOr("status = ? AND locked_until < ?", job.Running, now)
			}).
			Order("created_at ASC", "id ASC").
			Limit(1)
		if supportsSkipLocked(tx) {
			q = q.For("UPDATE SKIP LOCKED")
		}
		if err := q.Scan(ctx, &row); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}

		var model jobModel
		_, err := tx.NewUpdate().
			Model(&model).
			Set("status = ?", job.Running).
			Set("locked_by = ?", workerID).
			Set("locked_until = ?", lockedUntil).
			Set("updated_at = ?", now).
			Where("id = ?", row.Id).
			Returning("*").
			Exec(ctx)
		if err != nil {
			return err
		}
		result = model.toJob()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MarkSucceeded transitions a Running job to Succeeded, recording result
// and clearing its lease. It is a no-op if the job no longer exists or is
// no longer Running — a lease that already expired and was reclaimed by
// another worker wins the race, and this call silently does nothing.
func (c *Claimer) MarkSucceeded(ctx context.Context, id uuid.UUID, result json.RawMessage) error {
	now := c.clock.Now()
	_, err := c.db.NewUpdate().
		Model((*jobModel)(nil)).
		Set("status = ?", job.Succeeded).
		Set("result = ?", result).
		Set("locked_by = NULL").
		Set("locked_until = NULL").
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Where("status = ?", job.Running).
		Exec(ctx)
	return err
}

// MarkFailed records errText as the job's last error and increments
// attempts for this failed execution. If the new attempts count has
// reached max_attempts the job transitions to Dead; otherwise it is
// requeued with run_at advanced by duraq.Backoff(attempts) and its lease
// cleared. It is a no-op if the job no longer exists or is no longer
// Running.
func (c *Claimer) MarkFailed(ctx context.Context, id uuid.UUID, errText string) error {
	now := c.clock.Now()
	return c.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var row struct {
			Attempts    int
			MaxAttempts int
		}
		q := tx.NewSelect().
			Model((*jobModel)(nil)).
			Column("attempts", "max_attempts").
			Where("id = ?", id).
			Where("status = ?", job.Running)
		if supportsSkipLocked(tx) {
			q = q.For("UPDATE")
		}
		if err := q.Scan(ctx, &row); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return err
		}
		attempts := row.Attempts + 1

		upd := tx.NewUpdate().
			Model((*jobModel)(nil)).
			Set("attempts = ?", attempts).
			Set("last_error = ?", errText).
			Set("locked_by = NULL").
			Set("locked_until = NULL").
			Set("updated_at = ?", now).
			Where("id = ?", id).
			Where("status = ?", job.Running)
		if attempts >= row.MaxAttempts {
			upd = upd.Set("status = ?", job.Dead)
		} else {
			upd = upd.
				Set("status = ?", job.Queued).
				Set("run_at = ?", now.Add(duraq.Backoff(attempts)))
		}
		_, err := upd.Exec(ctx)
		return err
	})
}
