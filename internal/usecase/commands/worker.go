package commands

import (
	"context"

	domworker "salepoint/internal/domain/worker"
	"salepoint/internal/infra"
	"salepoint/internal/pkg/errs"
	"salepoint/internal/pkg/password"
	"salepoint/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDuplicateWorker = errs.New("worker already exists")
)

type CreateWorkerRequest struct {
	Username string
	Email    string
	Password string
	Role     string
}

type WorkerCommands interface {
	CreateWorker(ctx context.Context, req CreateWorkerRequest) (uuid.UUID, error)
}

type workerUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewWorkerUseCase(uow shared.UnitOfWork) WorkerCommands {
	return &workerUseCaseImpl{uow: uow}
}

func (uc *workerUseCaseImpl) CreateWorker(ctx context.Context, req CreateWorkerRequest) (uuid.UUID, error) {
	hash, err := password.HashPassword(req.Password)
	if err != nil {
		return uuid.Nil, err
	}

	w, err := domworker.NewWorker(req.Username, req.Email, hash, domworker.Role(req.Role))
	if err != nil {
		return uuid.Nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Workers().Create(ctx, tx.DB(), w); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateWorker
			}
			return wrapStoreErr(err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return w.ID(), nil
}
