package queries

import (
	"context"

	"github.com/google/uuid"
)

type CatalogQueries interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error)
	ListProducts(ctx context.Context) ([]*ProductView, error)
	GetService(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	ListServices(ctx context.Context) ([]*ServiceView, error)
}

type CatalogViewRepo interface {
	FindProductByID(ctx context.Context, id uuid.UUID) (*ProductView, error)
	FindAllProducts(ctx context.Context) ([]*ProductView, error)
	FindServiceByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	FindAllServices(ctx context.Context) ([]*ServiceView, error)
}

type catalogQueriesImpl struct {
	repo CatalogViewRepo
}

func NewCatalogQueries(repo CatalogViewRepo) CatalogQueries {
	return &catalogQueriesImpl{repo: repo}
}

func (q *catalogQueriesImpl) GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error) {
	return q.repo.FindProductByID(ctx, id)
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context) ([]*ProductView, error) {
	return q.repo.FindAllProducts(ctx)
}

func (q *catalogQueriesImpl) GetService(ctx context.Context, id uuid.UUID) (*ServiceView, error) {
	return q.repo.FindServiceByID(ctx, id)
}

func (q *catalogQueriesImpl) ListServices(ctx context.Context) ([]*ServiceView, error) {
	return q.repo.FindAllServices(ctx)
}
