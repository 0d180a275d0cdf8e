package writerepo

import (
	"context"

	"salepoint/internal/infra"
	"salepoint/internal/infra/db"

	"github.com/google/uuid"
)

type InventoryRepository struct{}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{}
}

// Reserve decrements stock with a conditional update so the row can
// never go negative, whatever else is running. Zero rows affected
// means either a missing product or not enough stock; one extra read
// tells them apart.
func (r *InventoryRepository) Reserve(ctx context.Context, dbtx db.DBTX, productID uuid.UUID, quantity int) error {
	tag, err := dbtx.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		productID, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve stock", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, dbtx, productID, "not enough stock to reserve")
	}
	return nil
}

func (r *InventoryRepository) AdjustStock(ctx context.Context, dbtx db.DBTX, productID uuid.UUID, delta int) error {
	tag, err := dbtx.Exec(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1 AND stock + $2 >= 0`,
		productID, delta)
	if err != nil {
		return infra.WrapRepoErr("failed to adjust stock", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMiss(ctx, dbtx, productID, "stock adjustment would go negative")
	}
	return nil
}

func (r *InventoryRepository) classifyMiss(ctx context.Context, dbtx db.DBTX, productID uuid.UUID, shortMsg string) error {
	var exists bool
	err := dbtx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`,
		productID).Scan(&exists)
	if err != nil {
		return infra.WrapRepoErr("failed to check product existence", err)
	}
	if !exists {
		return infra.NewRepoErr(infra.KindNotFound, "product not found")
	}
	return infra.NewRepoErr(infra.KindInsufficientStock, shortMsg)
}
