package writerepo

import (
	"context"

	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
)

type ReceiptRepository struct{}

func NewReceiptRepository() *ReceiptRepository {
	return &ReceiptRepository{}
}

// Allocate hands out the next counter value. The UPDATE locks the
// single counter row until the surrounding transaction ends, so
// committed sales get strictly increasing receipt numbers and an
// aborted sale leaves no gap.
func (r *ReceiptRepository) Allocate(ctx context.Context, dbtx db.DBTX) (int64, error) {
	var allocated int64
	err := dbtx.QueryRow(ctx,
		`UPDATE receipt_counter SET counter = counter + 1 WHERE id = 1 RETURNING counter - 1`,
	).Scan(&allocated)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to allocate receipt number", err)
	}
	return allocated, nil
}
