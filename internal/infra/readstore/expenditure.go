package readstore

import (
	"context"
	"fmt"
	"strings"

	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
	"salepoint/internal/pkg/pgconv"
	"salepoint/internal/usecase/queries"

	"github.com/google/uuid"
)

type ExpenditureReadStore struct {
	db db.DBTX
}

func NewExpenditureReadStore(dbtx db.DBTX) *ExpenditureReadStore {
	return &ExpenditureReadStore{db: dbtx}
}

func (r *ExpenditureReadStore) FindAll(ctx context.Context, workerID *uuid.UUID, limit, offset int) ([]*queries.ExpenditureView, error) {
	var (
		conds []string
		args  []any
	)
	if workerID != nil {
		args = append(args, *workerID)
		conds = append(conds, fmt.Sprintf("worker_id = $%d", len(args)))
	}

	query := `SELECT id, worker_id, category, amount::text, description, created_at FROM expenditures`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))
	args = append(args, offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list expenditures", err)
	}
	defer rows.Close()

	var result []*queries.ExpenditureView
	for rows.Next() {
		var (
			view       queries.ExpenditureView
			amountText string
		)
		if err = rows.Scan(&view.ID, &view.WorkerID, &view.Category, &amountText, &view.Description, &view.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expenditure row", err)
		}
		if view.Amount, err = pgconv.DecimalFromText(amountText); err != nil {
			return nil, infra.WrapRepoErr("failed to decode expenditure amount", err)
		}
		result = append(result, &view)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate expenditure rows", err)
	}
	return result, nil
}
