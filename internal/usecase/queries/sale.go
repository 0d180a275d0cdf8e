package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const DefaultListLimit = 50

type SaleListFilter struct {
	WorkerID *uuid.UUID
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

type SaleQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SaleView, error)
	List(ctx context.Context, filter SaleListFilter) ([]*SaleListItem, error)
}

type SaleViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleView, error)
	FindAll(ctx context.Context, filter SaleListFilter) ([]*SaleListItem, error)
}

type saleQueriesImpl struct {
	repo SaleViewRepo
}

func NewSaleQueries(repo SaleViewRepo) SaleQueries {
	return &saleQueriesImpl{repo: repo}
}

func (q *saleQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SaleView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *saleQueriesImpl) List(ctx context.Context, filter SaleListFilter) ([]*SaleListItem, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return q.repo.FindAll(ctx, filter)
}
