package readstore

import (
	"context"
	"time"

	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
	"salepoint/internal/pkg/pgconv"
	"salepoint/internal/usecase/queries"
)

type ReportReadStore struct {
	db db.DBTX
}

func NewReportReadStore(dbtx db.DBTX) *ReportReadStore {
	return &ReportReadStore{db: dbtx}
}

func (r *ReportReadStore) Summary(ctx context.Context, from, to *time.Time) (*queries.SummaryView, error) {
	var (
		view      queries.SummaryView
		salesText string
		expText   string
	)

	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0)::text, COUNT(*)
		 FROM transactions
		 WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		   AND ($2::timestamptz IS NULL OR created_at < $2)`,
		from, to).Scan(&salesText, &view.TransactionCount)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to sum sales", err)
	}

	err = r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)::text
		 FROM expenditures
		 WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		   AND ($2::timestamptz IS NULL OR created_at < $2)`,
		from, to).Scan(&expText)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to sum expenditures", err)
	}

	if view.TotalSales, err = pgconv.DecimalFromText(salesText); err != nil {
		return nil, infra.WrapRepoErr("failed to decode sales total", err)
	}
	if view.TotalExpenditures, err = pgconv.DecimalFromText(expText); err != nil {
		return nil, infra.WrapRepoErr("failed to decode expenditure total", err)
	}
	view.NetBalance = view.TotalSales.Sub(view.TotalExpenditures)
	return &view, nil
}

func (r *ReportReadStore) WorkerBalances(ctx context.Context, from, to *time.Time) ([]*queries.WorkerBalanceView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT w.id, w.username,
			COALESCE(t.sales, 0)::text,
			COALESCE(e.spent, 0)::text
		 FROM workers w
		 LEFT JOIN (
			SELECT worker_id, SUM(total) AS sales
			FROM transactions
			WHERE ($1::timestamptz IS NULL OR created_at >= $1)
			  AND ($2::timestamptz IS NULL OR created_at < $2)
			GROUP BY worker_id
		 ) t ON t.worker_id = w.id
		 LEFT JOIN (
			SELECT worker_id, SUM(amount) AS spent
			FROM expenditures
			WHERE ($1::timestamptz IS NULL OR created_at >= $1)
			  AND ($2::timestamptz IS NULL OR created_at < $2)
			GROUP BY worker_id
		 ) e ON e.worker_id = w.id
		 ORDER BY w.username, w.id`,
		from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list worker balances", err)
	}
	defer rows.Close()

	var result []*queries.WorkerBalanceView
	for rows.Next() {
		var (
			view      queries.WorkerBalanceView
			salesText string
			expText   string
		)
		if err = rows.Scan(&view.WorkerID, &view.Username, &salesText, &expText); err != nil {
			return nil, infra.WrapRepoErr("failed to scan worker balance row", err)
		}
		if view.Sales, err = pgconv.DecimalFromText(salesText); err != nil {
			return nil, infra.WrapRepoErr("failed to decode worker sales", err)
		}
		if view.Expenditures, err = pgconv.DecimalFromText(expText); err != nil {
			return nil, infra.WrapRepoErr("failed to decode worker expenditures", err)
		}
		view.Balance = view.Sales.Sub(view.Expenditures)
		result = append(result, &view)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate worker balance rows", err)
	}
	return result, nil
}
