package commands

import (
	"context"

	"salepoint/internal/infra"
	"salepoint/internal/pkg/clock"
	"salepoint/internal/pkg/errs"
	"salepoint/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrShiftAlreadyActive = errs.New("worker already has an active shift")
	ErrNoActiveShift      = errs.New("no active shift")
)

type StartShiftResult struct {
	ShiftID   uuid.UUID
	StartedAt int64
}

type EndShiftResult struct {
	ShiftID    uuid.UUID
	DurationMs int64
}

type ShiftCommands interface {
	StartShift(ctx context.Context, workerID uuid.UUID) (*StartShiftResult, error)
	EndShift(ctx context.Context, workerID uuid.UUID) (*EndShiftResult, error)
}

type shiftUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewShiftUseCase(uow shared.UnitOfWork, clk clock.Clock) ShiftCommands {
	return &shiftUseCaseImpl{uow: uow, clock: clk}
}

func (uc *shiftUseCaseImpl) StartShift(ctx context.Context, workerID uuid.UUID) (*StartShiftResult, error) {
	startedAt := uc.clock.Now()

	var result *StartShiftResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err := tx.Shifts().Start(ctx, tx.DB(), workerID, startedAt)
		if err != nil {
			// The partial unique index on active shifts trips here.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrShiftAlreadyActive
			}
			return wrapStoreErr(err)
		}
		result = &StartShiftResult{ShiftID: id, StartedAt: startedAt.UnixMilli()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *shiftUseCaseImpl) EndShift(ctx context.Context, workerID uuid.UUID) (*EndShiftResult, error) {
	var result *EndShiftResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ActiveShiftByWorker(ctx, workerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrNoActiveShift
			}
			return wrapStoreErr(err)
		}

		endedAt := uc.clock.Now()
		durationMs := endedAt.Sub(snap.StartedAt).Milliseconds()
		if durationMs < 0 {
			durationMs = 0
		}

		if err = tx.Shifts().End(ctx, tx.DB(), snap.ID, endedAt, durationMs); err != nil {
			return wrapStoreErr(err)
		}
		result = &EndShiftResult{ShiftID: snap.ID, DurationMs: durationMs}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
