package readstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
	"salepoint/internal/pkg/pgconv"
	"salepoint/internal/usecase/queries"

	"github.com/google/uuid"
)

type SaleReadStore struct {
	db db.DBTX
}

func NewSaleReadStore(dbtx db.DBTX) *SaleReadStore {
	return &SaleReadStore{db: dbtx}
}

const saleViewColumns = `
	t.id, t.receipt_number, t.worker_id, w.username,
	t.items, t.subtotal::text, t.discount, t.discount_amount::text, t.total::text,
	t.payment_mode, t.customer, t.created_at`

func (r *SaleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SaleView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT`+saleViewColumns+`
		 FROM transactions t
		 JOIN workers w ON w.id = t.worker_id
		 WHERE t.id = $1`, id)

	var (
		view         queries.SaleView
		items        []byte
		discount     []byte
		customer     []byte
		subtotalText string
		discountText string
		totalText    string
	)
	err := row.Scan(
		&view.ID, &view.ReceiptNumber, &view.WorkerID, &view.WorkerUsername,
		&items, &subtotalText, &discount, &discountText, &totalText,
		&view.PaymentMode, &customer, &view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("sale not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find sale by ID", err)
	}

	if err = json.Unmarshal(items, &view.Lines); err != nil {
		return nil, infra.WrapRepoErr("failed to decode sale items", err)
	}
	if discount != nil {
		view.Discount = &queries.SaleDiscountView{}
		if err = json.Unmarshal(discount, view.Discount); err != nil {
			return nil, infra.WrapRepoErr("failed to decode sale discount", err)
		}
	}
	if customer != nil {
		view.Customer = &queries.SaleCustomerView{}
		if err = json.Unmarshal(customer, view.Customer); err != nil {
			return nil, infra.WrapRepoErr("failed to decode sale customer", err)
		}
	}

	if view.Subtotal, err = pgconv.DecimalFromText(subtotalText); err != nil {
		return nil, infra.WrapRepoErr("failed to decode sale subtotal", err)
	}
	if view.DiscountAmount, err = pgconv.DecimalFromText(discountText); err != nil {
		return nil, infra.WrapRepoErr("failed to decode sale discount amount", err)
	}
	if view.Total, err = pgconv.DecimalFromText(totalText); err != nil {
		return nil, infra.WrapRepoErr("failed to decode sale total", err)
	}
	return &view, nil
}

func (r *SaleReadStore) FindAll(ctx context.Context, filter queries.SaleListFilter) ([]*queries.SaleListItem, error) {
	var (
		conds []string
		args  []any
	)
	if filter.WorkerID != nil {
		args = append(args, *filter.WorkerID)
		conds = append(conds, fmt.Sprintf("t.worker_id = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, fmt.Sprintf("t.created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, fmt.Sprintf("t.created_at < $%d", len(args)))
	}

	query := `SELECT t.id, t.receipt_number, t.worker_id, t.total::text, t.payment_mode, t.created_at
		 FROM transactions t`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY t.created_at DESC, t.id DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sales", err)
	}
	defer rows.Close()

	var result []*queries.SaleListItem
	for rows.Next() {
		var (
			item      queries.SaleListItem
			totalText string
		)
		if err = rows.Scan(&item.ID, &item.ReceiptNumber, &item.WorkerID, &totalText, &item.PaymentMode, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan sale row", err)
		}
		if item.Total, err = pgconv.DecimalFromText(totalText); err != nil {
			return nil, infra.WrapRepoErr("failed to decode sale total", err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate sale rows", err)
	}
	return result, nil
}
