package writerepo

import (
	"context"
	"time"

	"salepoint/internal/infra"
	"salepoint/internal/infra/db"

	"github.com/google/uuid"
)

type ShiftRepository struct{}

func NewShiftRepository() *ShiftRepository {
	return &ShiftRepository{}
}

func (r *ShiftRepository) Start(ctx context.Context, dbtx db.DBTX, workerID uuid.UUID, startedAt time.Time) (uuid.UUID, error) {
	id := uuid.New()
	_, err := dbtx.Exec(ctx,
		`INSERT INTO worker_shifts (id, worker_id, start_time, active) VALUES ($1, $2, $3, TRUE)`,
		id, workerID, startedAt)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to start shift", err)
	}
	return id, nil
}

func (r *ShiftRepository) End(ctx context.Context, dbtx db.DBTX, shiftID uuid.UUID, endedAt time.Time, durationMs int64) error {
	tag, err := dbtx.Exec(ctx,
		`UPDATE worker_shifts SET end_time = $2, duration_ms = $3, active = FALSE
		 WHERE id = $1 AND active`,
		shiftID, endedAt, durationMs)
	if err != nil {
		return infra.WrapRepoErr("failed to end shift", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "active shift not found")
	}
	return nil
}
