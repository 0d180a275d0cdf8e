package readstore

import (
	"context"

	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
	"salepoint/internal/pkg/pgconv"
	"salepoint/internal/usecase/queries"
	"salepoint/internal/usecase/shared"
)

type WorkerReadStore struct {
	db db.DBTX
}

func NewWorkerReadStore(dbtx db.DBTX) *WorkerReadStore {
	return &WorkerReadStore{db: dbtx}
}

func (r *WorkerReadStore) FindAll(ctx context.Context) ([]*queries.WorkerView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, email, role, active FROM workers ORDER BY username, id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list workers", err)
	}
	defer rows.Close()

	var result []*queries.WorkerView
	for rows.Next() {
		var view queries.WorkerView
		if err = rows.Scan(&view.ID, &view.Username, &view.Email, &view.Role, &view.Active); err != nil {
			return nil, infra.WrapRepoErr("failed to scan worker row", err)
		}
		result = append(result, &view)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate worker rows", err)
	}
	return result, nil
}

func (r *WorkerReadStore) WorkerByEmail(ctx context.Context, email string) (*shared.WorkerSnapshot, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, username, email, password_hash, role, active FROM workers WHERE email = $1`, email)

	var snap shared.WorkerSnapshot
	err := row.Scan(&snap.ID, &snap.Username, &snap.Email, &snap.PasswordHash, &snap.Role, &snap.Active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("worker not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find worker by email", err)
	}
	return &snap, nil
}
