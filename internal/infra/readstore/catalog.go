package readstore

import (
	"context"

	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
	"salepoint/internal/pkg/pgconv"
	"salepoint/internal/usecase/queries"
	"salepoint/internal/usecase/shared"

	"github.com/google/uuid"
)

type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(dbtx db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: dbtx}
}

func (r *CatalogReadStore) FindProductByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, price::text, stock, created_at, updated_at FROM products WHERE id = $1`, id)

	var (
		view      queries.ProductView
		priceText string
	)
	err := row.Scan(&view.ID, &view.Name, &priceText, &view.Stock, &view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product by ID", err)
	}
	if view.Price, err = pgconv.DecimalFromText(priceText); err != nil {
		return nil, infra.WrapRepoErr("failed to decode product price", err)
	}
	return &view, nil
}

func (r *CatalogReadStore) FindAllProducts(ctx context.Context) ([]*queries.ProductView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price::text, stock, created_at, updated_at FROM products ORDER BY name, id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	var result []*queries.ProductView
	for rows.Next() {
		var (
			view      queries.ProductView
			priceText string
		)
		if err = rows.Scan(&view.ID, &view.Name, &priceText, &view.Stock, &view.CreatedAt, &view.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product row", err)
		}
		if view.Price, err = pgconv.DecimalFromText(priceText); err != nil {
			return nil, infra.WrapRepoErr("failed to decode product price", err)
		}
		result = append(result, &view)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate product rows", err)
	}
	return result, nil
}

func (r *CatalogReadStore) FindServiceByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, name, price::text, created_at, updated_at FROM services WHERE id = $1`, id)

	var (
		view      queries.ServiceView
		priceText string
	)
	err := row.Scan(&view.ID, &view.Name, &priceText, &view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}
	if view.Price, err = pgconv.DecimalFromText(priceText); err != nil {
		return nil, infra.WrapRepoErr("failed to decode service price", err)
	}
	return &view, nil
}

func (r *CatalogReadStore) FindAllServices(ctx context.Context) ([]*queries.ServiceView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price::text, created_at, updated_at FROM services ORDER BY name, id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	defer rows.Close()

	var result []*queries.ServiceView
	for rows.Next() {
		var (
			view      queries.ServiceView
			priceText string
		)
		if err = rows.Scan(&view.ID, &view.Name, &priceText, &view.CreatedAt, &view.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service row", err)
		}
		if view.Price, err = pgconv.DecimalFromText(priceText); err != nil {
			return nil, infra.WrapRepoErr("failed to decode service price", err)
		}
		result = append(result, &view)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate service rows", err)
	}
	return result, nil
}

// Snapshot reads for the command side.

func (r *CatalogReadStore) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	snaps, err := r.ProductsByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, infra.NewRepoErr(infra.KindNotFound, "product not found")
	}
	return &snaps[0], nil
}

func (r *CatalogReadStore) ProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]shared.ProductSnapshot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price::text, stock FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find products by IDs", err)
	}
	defer rows.Close()

	var result []shared.ProductSnapshot
	for rows.Next() {
		var (
			snap      shared.ProductSnapshot
			priceText string
		)
		if err = rows.Scan(&snap.ID, &snap.Name, &priceText, &snap.Stock); err != nil {
			return nil, infra.WrapRepoErr("failed to scan product snapshot", err)
		}
		if snap.Price, err = pgconv.DecimalFromText(priceText); err != nil {
			return nil, infra.WrapRepoErr("failed to decode product price", err)
		}
		result = append(result, snap)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate product snapshots", err)
	}
	return result, nil
}

func (r *CatalogReadStore) ServiceByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	snaps, err := r.ServicesByIDs(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, infra.NewRepoErr(infra.KindNotFound, "service not found")
	}
	return &snaps[0], nil
}

func (r *CatalogReadStore) ServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]shared.ServiceSnapshot, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, price::text FROM services WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find services by IDs", err)
	}
	defer rows.Close()

	var result []shared.ServiceSnapshot
	for rows.Next() {
		var (
			snap      shared.ServiceSnapshot
			priceText string
		)
		if err = rows.Scan(&snap.ID, &snap.Name, &priceText); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service snapshot", err)
		}
		if snap.Price, err = pgconv.DecimalFromText(priceText); err != nil {
			return nil, infra.WrapRepoErr("failed to decode service price", err)
		}
		result = append(result, snap)
	}
	if err = rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate service snapshots", err)
	}
	return result, nil
}
