package writerepo

import (
	"context"

	domworker "salepoint/internal/domain/worker"
	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
)

type WorkerRepository struct{}

func NewWorkerRepository() *WorkerRepository {
	return &WorkerRepository{}
}

func (r *WorkerRepository) Create(ctx context.Context, dbtx db.DBTX, w *domworker.Worker) error {
	_, err := dbtx.Exec(ctx,
		`INSERT INTO workers (id, username, email, password_hash, role, active)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID(), w.Username(), w.Email(), w.PasswordHash(), w.Role().String(), w.Active())
	if err != nil {
		return infra.WrapRepoErr("failed to create worker", err)
	}
	return nil
}
