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

type SubmissionReadStore struct {
	db db.DBTX
}

func NewSubmissionReadStore(dbtx db.DBTX) *SubmissionReadStore {
	return &SubmissionReadStore{db: dbtx}
}

func (r *SubmissionReadStore) FindAll(ctx context.Context, status *string, limit, offset int) ([]*queries.SubmissionView, error) {
	query := `SELECT id, worker_id, amount::text, description, status,
			approved_by, approved_at, rejected_by, rejected_at, created_at
		 FROM submissions`
	args := []any{}
	if status != nil {
		args = append(args, *status)
		query += ` WHERE status = $1`
	}
	args = append(args, limit, offset)
	if status != nil {
		query += ` ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	} else {
		query += ` ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list submissions", err)
	}
	defer rows.Close()

	var result []*queries.SubmissionView
	for rows.Next() {
		var (
			view       queries.SubmissionView
			amountText string
			approvedBy pgtype.UUID
			approvedAt pgtype.Timestamptz
			rejectedBy pgtype.UUID
			rejectedAt pgtype.Timestamptz
		)
		err = rows.Scan(&view.ID, &view.WorkerID, &amountText, &view.Description, &view.Status,
			&approvedBy, &approvedAt, &rejectedBy, &rejectedAt, &view.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan submission row", err)
		}
		if view.Amount, err = pgconv.DecimalFromText(amountText); err != nil {
			return nil, infra.WrapRepoErr("failed to decode submission amount", err)
		}
		view.ApprovedBy = pgconv.UUIDPtrFromPgtype(approvedBy)
		view.ApprovedAt = pgconv.TimePtrFromPgtype(approvedAt)
		view.RejectedBy = pgconv.UUIDPtrFromPgtype(rejectedBy)
		view.RejectedAt = pgconv.TimePtrFromPgtype(rejectedAt)
		result = append(result, &view)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate submission rows", err)
	}
	return result, nil
}

func (r *SubmissionReadStore) SubmissionByID(ctx context.Context, id uuid.UUID) (*shared.SubmissionSnapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, worker_id, amount::text, description, status, created_at FROM submissions WHERE id = $1`, id)

	var (
		snap       shared.SubmissionSnapshot
		amountText string
	)
	err := row.Scan(&snap.ID, &snap.WorkerID, &amountText, &snap.Description, &snap.Status, &snap.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("submission not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find submission by ID", err)
	}
	if snap.Amount, err = pgconv.DecimalFromText(amountText); err != nil {
		return nil, infra.WrapRepoErr("failed to decode submission amount", err)
	}
	return &snap, nil
}
