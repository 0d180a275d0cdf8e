package commands

import (
	"context"
	"strings"

	"salepoint/internal/pkg/clock"
	"salepoint/internal/pkg/errs"
	"salepoint/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidExpenditure = errs.New("invalid expenditure")
)

type RecordExpenditureRequest struct {
	Category    string
	Amount      decimal.Decimal
	Description string
}

type ExpenditureCommands interface {
	RecordExpenditure(ctx context.Context, req RecordExpenditureRequest, workerID uuid.UUID) (uuid.UUID, error)
}

type expenditureUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewExpenditureUseCase(uow shared.UnitOfWork, clk clock.Clock) ExpenditureCommands {
	return &expenditureUseCaseImpl{uow: uow, clock: clk}
}

func (uc *expenditureUseCaseImpl) RecordExpenditure(
	ctx context.Context,
	req RecordExpenditureRequest,
	workerID uuid.UUID,
) (uuid.UUID, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return uuid.Nil, errs.Wrap(ErrInvalidExpenditure, "category cannot be empty")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return uuid.Nil, errs.Wrap(ErrInvalidExpenditure, "amount must be positive")
	}

	rec := &shared.ExpenditureRecord{
		ID:          uuid.New(),
		WorkerID:    workerID,
		Category:    category,
		Amount:      req.Amount,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   uc.clock.Now(),
	}

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Expenditures().Create(ctx, tx.DB(), rec); err != nil {
			return wrapStoreErr(err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return rec.ID, nil
}
