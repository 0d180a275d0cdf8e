package commands

import (
	"context"

	domworker "salepoint/internal/domain/worker"
	"salepoint/internal/infra"
	"salepoint/internal/pkg/errs"
	"salepoint/internal/pkg/jwt"
	"salepoint/internal/pkg/password"
	"salepoint/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrWorkerInactive     = errs.New("worker inactive")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type LoginResult struct {
	WorkerID uuid.UUID
	Username string
	Role     string
	Token    string
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{uow: uow, jwtService: jwtService}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	snap, err := a.uow.CommandReads().WorkerByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, wrapStoreErr(err)
	}

	if !snap.Active {
		return nil, ErrWorkerInactive
	}

	if err = password.ComparePassword(snap.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(snap.ID, domworker.Role(snap.Role))
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		WorkerID: snap.ID,
		Username: snap.Username,
		Role:     snap.Role,
		Token:    token,
	}, nil
}
