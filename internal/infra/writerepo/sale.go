package writerepo

import (
	"context"
	"encoding/json"

	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
	"salepoint/internal/pkg/pgconv"
	"salepoint/internal/usecase/shared"
)

type SaleRepository struct{}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{}
}

func (r *SaleRepository) Create(ctx context.Context, dbtx db.DBTX, rec *shared.SaleRecord) error {
	items, err := json.Marshal(rec.Lines)
	if err != nil {
		return infra.WrapRepoErr("failed to encode sale items", err)
	}

	var discount []byte
	if rec.Discount != nil {
		if discount, err = json.Marshal(rec.Discount); err != nil {
			return infra.WrapRepoErr("failed to encode sale discount", err)
		}
	}

	var customer []byte
	if rec.Customer != nil {
		if customer, err = json.Marshal(rec.Customer); err != nil {
			return infra.WrapRepoErr("failed to encode sale customer", err)
		}
	}

	_, err = dbtx.Exec(ctx,
		`INSERT INTO transactions
		   (id, receipt_number, worker_id, items, subtotal, discount, discount_amount, total, payment_mode, customer, created_at)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6, $7::numeric, $8::numeric, $9, $10, $11)`,
		rec.ID,
		rec.ReceiptNumber,
		rec.WorkerID,
		items,
		pgconv.DecimalToText(rec.Subtotal),
		discount,
		pgconv.DecimalToText(rec.DiscountAmount),
		pgconv.DecimalToText(rec.Total),
		rec.PaymentMode,
		customer,
		rec.CreatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create transaction", err)
	}
	return nil
}
