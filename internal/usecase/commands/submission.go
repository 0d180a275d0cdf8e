package commands

import (
	"context"

	domsubmission "salepoint/internal/domain/submission"
	"salepoint/internal/infra"
	"salepoint/internal/pkg/clock"
	"salepoint/internal/pkg/errs"
	"salepoint/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrSubmissionNotFound = errs.New("submission not found")
)

type CreateSubmissionRequest struct {
	Amount      decimal.Decimal
	Description string
}

type SubmissionCommands interface {
	CreateSubmission(ctx context.Context, req CreateSubmissionRequest, workerID uuid.UUID) (uuid.UUID, error)
	ApproveSubmission(ctx context.Context, submissionID, adminID uuid.UUID) error
	RejectSubmission(ctx context.Context, submissionID, adminID uuid.UUID) error
}

type submissionUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSubmissionUseCase(uow shared.UnitOfWork, clk clock.Clock) SubmissionCommands {
	return &submissionUseCaseImpl{uow: uow, clock: clk}
}

func (uc *submissionUseCaseImpl) CreateSubmission(
	ctx context.Context,
	req CreateSubmissionRequest,
	workerID uuid.UUID,
) (uuid.UUID, error) {
	sub, err := domsubmission.NewSubmission(workerID, req.Amount, req.Description, uc.clock.Now())
	if err != nil {
		return uuid.Nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Submissions().Create(ctx, tx.DB(), sub); err != nil {
			return wrapStoreErr(err)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return sub.ID(), nil
}

func (uc *submissionUseCaseImpl) ApproveSubmission(ctx context.Context, submissionID, adminID uuid.UUID) error {
	return uc.decide(ctx, submissionID, func(s *domsubmission.Submission) error {
		return s.Approve(adminID, uc.clock.Now())
	})
}

func (uc *submissionUseCaseImpl) RejectSubmission(ctx context.Context, submissionID, adminID uuid.UUID) error {
	return uc.decide(ctx, submissionID, func(s *domsubmission.Submission) error {
		return s.Reject(adminID, uc.clock.Now())
	})
}

// decide reads the submission inside the transaction so two admins
// racing on the same submission cannot both win.
func (uc *submissionUseCaseImpl) decide(
	ctx context.Context,
	submissionID uuid.UUID,
	apply func(*domsubmission.Submission) error,
) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().SubmissionByID(ctx, submissionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrSubmissionNotFound
			}
			return wrapStoreErr(err)
		}

		sub := domsubmission.Reconstruct(
			snap.ID,
			snap.WorkerID,
			snap.Amount,
			snap.Description,
			domsubmission.Status(snap.Status),
			nil,
			nil,
			snap.CreatedAt,
		)
		if err = apply(sub); err != nil {
			return err
		}

		if err = tx.Submissions().SaveDecision(ctx, tx.DB(), sub); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return domsubmission.ErrAlreadyDecided
			}
			return wrapStoreErr(err)
		}
		return nil
	})
}
