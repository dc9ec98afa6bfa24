package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/mujahedk/duraq"
	"github.com/mujahedk/duraq/job"
	"github.com/uptrace/bun"
)

const defaultListLimit = 50

// Observer implements duraq.Observer using a SQL backend.
//
// Observer provides read-only access to job state stored in the database.
// It does not participate in lease handling or state transitions and must
// not modify job records.
type Observer struct {
	db *bun.DB
}

var _ duraq.Observer = (*Observer)(nil)

// NewObserver creates a new SQL-backed Observer. db must be connected and
// have had InitDB run against it.
func NewObserver(db *bun.DB) *Observer {
	return &Observer{db: db}
}

// Get retrieves a job by its identifier. If no job with the given id
// exists, Get returns (nil, nil).
func (o *Observer) Get(ctx context.Context, id uuid.UUID) (*job.Job, error) {
	var ret jobModel
	err := o.db.NewSelect().
		Model(&ret).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ret.toJob(), nil
}

// List returns jobs matching opts, most recently created first with a
// stable tiebreak on id. A zero Status or empty Type means "no filter" on
// that field. A non-positive Limit falls back to defaultListLimit.
func (o *Observer) List(ctx context.Context, opts duraq.ListOptions) ([]*job.Job, error) {
	var models []jobModel
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := o.db.NewSelect().
		Model(&models).
		Order("created_at DESC", "id DESC").
		Limit(limit)
	if opts.Status != job.Unknown {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.Type != "" {
		query = query.Where("type = ?", opts.Type)
	}
	if err := query.Scan(ctx); err != nil {
		return nil, err
	}
	ret := make([]*job.Job, len(models))
	for i := range models {
		ret[i] = models[i].toJob()
	}
	return ret, nil
}
