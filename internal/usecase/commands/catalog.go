package commands

import (
	"context"
	"log/slog"

	"salepoint/internal/domain/catalog"
	"salepoint/internal/infra"
	"salepoint/internal/pkg/errs"
	"salepoint/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound = errs.New("product not found")
	ErrServiceNotFound = errs.New("service not found")
	ErrDuplicateItem   = errs.New("catalog item already exists")
	ErrStockUnderflow  = errs.New("stock adjustment below zero")
)

// CatalogCache invalidates cached catalog listings after writes.
type CatalogCache interface {
	Invalidate(ctx context.Context) error
}

type CreateProductRequest struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

type UpdateProductRequest struct {
	Name  string
	Price decimal.Decimal
	Stock int
}

type CreateServiceRequest struct {
	Name  string
	Price decimal.Decimal
}

type UpdateServiceRequest struct {
	Name  string
	Price decimal.Decimal
}

type CatalogCommands interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (uuid.UUID, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
	CreateService(ctx context.Context, req CreateServiceRequest) (uuid.UUID, error)
	UpdateService(ctx context.Context, id uuid.UUID, req UpdateServiceRequest) error
	DeleteService(ctx context.Context, id uuid.UUID) error
}

type catalogUseCaseImpl struct {
	uow   shared.UnitOfWork
	cache CatalogCache
}

func NewCatalogUseCase(uow shared.UnitOfWork, cache CatalogCache) CatalogCommands {
	return &catalogUseCaseImpl{uow: uow, cache: cache}
}

func (uc *catalogUseCaseImpl) CreateProduct(ctx context.Context, req CreateProductRequest) (uuid.UUID, error) {
	p, err := catalog.NewProduct(req.Name, req.Price, req.Stock)
	if err != nil {
		return uuid.Nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return mapCatalogWriteErr(tx.Catalog().CreateProduct(ctx, tx.DB(), p))
	})
	if err != nil {
		return uuid.Nil, err
	}

	uc.invalidateCache(ctx)
	return p.ID(), nil
}

func (uc *catalogUseCaseImpl) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) error {
	// Validate through the constructor, persist under the existing id.
	if _, err := catalog.NewProduct(req.Name, req.Price, req.Stock); err != nil {
		return err
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Catalog().UpdateProduct(ctx, tx.DB(), id, req.Name, req.Price, req.Stock)
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrProductNotFound
		}
		return mapCatalogWriteErr(err)
	})
	if err != nil {
		return err
	}

	uc.invalidateCache(ctx)
	return nil
}

func (uc *catalogUseCaseImpl) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Catalog().DeleteProduct(ctx, tx.DB(), id)
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrProductNotFound
		}
		return mapCatalogWriteErr(err)
	})
	if err != nil {
		return err
	}

	uc.invalidateCache(ctx)
	return nil
}

func (uc *catalogUseCaseImpl) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Inventory().AdjustStock(ctx, tx.DB(), id, delta)
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return ErrProductNotFound
		case infra.IsKind(err, infra.KindInsufficientStock):
			return ErrStockUnderflow
		}
		return mapCatalogWriteErr(err)
	})
	if err != nil {
		return err
	}

	uc.invalidateCache(ctx)
	return nil
}

func (uc *catalogUseCaseImpl) CreateService(ctx context.Context, req CreateServiceRequest) (uuid.UUID, error) {
	s, err := catalog.NewService(req.Name, req.Price)
	if err != nil {
		return uuid.Nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return mapCatalogWriteErr(tx.Catalog().CreateService(ctx, tx.DB(), s))
	})
	if err != nil {
		return uuid.Nil, err
	}

	uc.invalidateCache(ctx)
	return s.ID(), nil
}

func (uc *catalogUseCaseImpl) UpdateService(ctx context.Context, id uuid.UUID, req UpdateServiceRequest) error {
	if _, err := catalog.NewService(req.Name, req.Price); err != nil {
		return err
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Catalog().UpdateService(ctx, tx.DB(), id, req.Name, req.Price)
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrServiceNotFound
		}
		return mapCatalogWriteErr(err)
	})
	if err != nil {
		return err
	}

	uc.invalidateCache(ctx)
	return nil
}

func (uc *catalogUseCaseImpl) DeleteService(ctx context.Context, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Catalog().DeleteService(ctx, tx.DB(), id)
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrServiceNotFound
		}
		return mapCatalogWriteErr(err)
	})
	if err != nil {
		return err
	}

	uc.invalidateCache(ctx)
	return nil
}

// Cache invalidation is best effort; a stale listing corrects itself
// at TTL expiry.
func (uc *catalogUseCaseImpl) invalidateCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate catalog cache", "error", err)
	}
}

func mapCatalogWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindDuplicateKey):
		return ErrDuplicateItem
	default:
		return errs.Mark(err, ErrStoreUnavailable)
	}
}
