package readstore

import (
	"context"

	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
	"salepoint/internal/pkg/pgconv"
	"salepoint/internal/usecase/queries"
	"salepoint/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ShiftReadStore struct {
	db db.DBTX
}

func NewShiftReadStore(dbtx db.DBTX) *ShiftReadStore {
	return &ShiftReadStore{db: dbtx}
}

func (r *ShiftReadStore) FindActiveByWorker(ctx context.Context, workerID uuid.UUID) (*queries.ShiftView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, worker_id, start_time, end_time, duration_ms, active
		 FROM worker_shifts WHERE worker_id = $1 AND active`, workerID)

	var (
		view       queries.ShiftView
		endTime    pgtype.Timestamptz
		durationMs pgtype.Int8
	)
	err := row.Scan(&view.ID, &view.WorkerID, &view.StartedAt, &endTime, &durationMs, &view.Active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("active shift not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find active shift", err)
	}
	view.EndedAt = pgconv.TimePtrFromPgtype(endTime)
	if durationMs.Valid {
		view.DurationMs = &durationMs.Int64
	}
	return &view, nil
}

func (r *ShiftReadStore) ActiveShiftByWorker(ctx context.Context, workerID uuid.UUID) (*shared.ShiftSnapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, worker_id, start_time FROM worker_shifts WHERE worker_id = $1 AND active`, workerID)

	var snap shared.ShiftSnapshot
	err := row.Scan(&snap.ID, &snap.WorkerID, &snap.StartedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("active shift not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find active shift", err)
	}
	return &snap, nil
}
