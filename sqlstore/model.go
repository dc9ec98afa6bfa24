package sqlstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/mujahedk/duraq/job"
	"github.com/uptrace/bun"
)

type jobModel struct {
	bun.BaseModel `bun:"table:jobs"`

	Id      uuid.UUID `bun:"id,pk,type:uuid"`
	Type    string    `bun:"type,notnull"`
	Payload []byte    `bun:"payload,type:jsonb,notnull"`
	Result  []byte    `bun:"result,type:jsonb,nullzero"`

	Status      job.Status `bun:"status,notnull"`
	Attempts    int        `bun:"attempts,notnull,default:0"`
	MaxAttempts int        `bun:"max_attempts,notnull"`
	RunAt       time.Time  `bun:"run_at,notnull"`
	LockedBy    *string    `bun:"locked_by,nullzero"`
	LockedUntil *time.Time `bun:"locked_until,nullzero"`
	LastError   *string    `bun:"last_error,nullzero"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func (jm *jobModel) toJob() *job.Job {
	return &job.Job{
		Id:          jm.Id,
		Type:        jm.Type,
		Payload:     jm.Payload,
		Result:      jm.Result,
		Status:      jm.Status,
		Attempts:    jm.Attempts,
		MaxAttempts: jm.MaxAttempts,
		RunAt:       jm.RunAt,
		LockedBy:    jm.LockedBy,
		LockedUntil: jm.LockedUntil,
		LastError:   jm.LastError,
		CreatedAt:   jm.CreatedAt,
		UpdatedAt:   jm.UpdatedAt,
	}
}
