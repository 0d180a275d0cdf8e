package writerepo

import (
	"context"

	"salepoint/internal/domain/catalog"
	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
	"salepoint/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, dbtx db.DBTX, p *catalog.Product) error {
	_, err := dbtx.Exec(ctx,
		`INSERT INTO products (id, name, price, stock) VALUES ($1, $2, $3::numeric, $4)`,
		p.ID(), p.Name(), pgconv.DecimalToText(p.Price()), p.Stock())
	if err != nil {
		return infra.WrapRepoErr("failed to create product", err)
	}
	return nil
}

func (r *CatalogRepository) UpdateProduct(ctx context.Context, dbtx db.DBTX, id uuid.UUID, name string, price decimal.Decimal, stock int) error {
	tag, err := dbtx.Exec(ctx,
		`UPDATE products SET name = $2, price = $3::numeric, stock = $4, updated_at = now() WHERE id = $1`,
		id, name, pgconv.DecimalToText(price), stock)
	if err != nil {
		return infra.WrapRepoErr("failed to update product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "product not found")
	}
	return nil
}

func (r *CatalogRepository) DeleteProduct(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "product not found")
	}
	return nil
}

func (r *CatalogRepository) CreateService(ctx context.Context, dbtx db.DBTX, s *catalog.Service) error {
	_, err := dbtx.Exec(ctx,
		`INSERT INTO services (id, name, price) VALUES ($1, $2, $3::numeric)`,
		s.ID(), s.Name(), pgconv.DecimalToText(s.Price()))
	if err != nil {
		return infra.WrapRepoErr("failed to create service", err)
	}
	return nil
}

func (r *CatalogRepository) UpdateService(ctx context.Context, dbtx db.DBTX, id uuid.UUID, name string, price decimal.Decimal) error {
	tag, err := dbtx.Exec(ctx,
		`UPDATE services SET name = $2, price = $3::numeric, updated_at = now() WHERE id = $1`,
		id, name, pgconv.DecimalToText(price))
	if err != nil {
		return infra.WrapRepoErr("failed to update service", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "service not found")
	}
	return nil
}

func (r *CatalogRepository) DeleteService(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	tag, err := dbtx.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete service", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "service not found")
	}
	return nil
}
