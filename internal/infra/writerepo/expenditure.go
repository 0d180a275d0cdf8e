package writerepo

import (
	"context"

	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
	"salepoint/internal/pkg/pgconv"
	"salepoint/internal/usecase/shared"
)

type ExpenditureRepository struct{}

func NewExpenditureRepository() *ExpenditureRepository {
	return &ExpenditureRepository{}
}

func (r *ExpenditureRepository) Create(ctx context.Context, dbtx db.DBTX, rec *shared.ExpenditureRecord) error {
	_, err := dbtx.Exec(ctx,
		`INSERT INTO expenditures (id, worker_id, category, amount, description, created_at)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6)`,
		rec.ID, rec.WorkerID, rec.Category, pgconv.DecimalToText(rec.Amount), rec.Description, rec.CreatedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create expenditure", err)
	}
	return nil
}
