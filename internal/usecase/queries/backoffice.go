package queries

import (
	"context"

	"github.com/google/uuid"
)

type ExpenditureQueries interface {
	List(ctx context.Context, workerID *uuid.UUID, limit, offset int) ([]*ExpenditureView, error)
}

type ExpenditureViewRepo interface {
	FindAll(ctx context.Context, workerID *uuid.UUID, limit, offset int) ([]*ExpenditureView, error)
}

type expenditureQueriesImpl struct {
	repo ExpenditureViewRepo
}

func NewExpenditureQueries(repo ExpenditureViewRepo) ExpenditureQueries {
	return &expenditureQueriesImpl{repo: repo}
}

func (q *expenditureQueriesImpl) List(ctx context.Context, workerID *uuid.UUID, limit, offset int) ([]*ExpenditureView, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return q.repo.FindAll(ctx, workerID, limit, offset)
}

type SubmissionQueries interface {
	List(ctx context.Context, status *string, limit, offset int) ([]*SubmissionView, error)
}

type SubmissionViewRepo interface {
	FindAll(ctx context.Context, status *string, limit, offset int) ([]*SubmissionView, error)
}

type submissionQueriesImpl struct {
	repo SubmissionViewRepo
}

func NewSubmissionQueries(repo SubmissionViewRepo) SubmissionQueries {
	return &submissionQueriesImpl{repo: repo}
}

func (q *submissionQueriesImpl) List(ctx context.Context, status *string, limit, offset int) ([]*SubmissionView, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return q.repo.FindAll(ctx, status, limit, offset)
}

type ShiftQueries interface {
	Current(ctx context.Context, workerID uuid.UUID) (*ShiftView, error)
}

type ShiftViewRepo interface {
	FindActiveByWorker(ctx context.Context, workerID uuid.UUID) (*ShiftView, error)
}

type shiftQueriesImpl struct {
	repo ShiftViewRepo
}

func NewShiftQueries(repo ShiftViewRepo) ShiftQueries {
	return &shiftQueriesImpl{repo: repo}
}

func (q *shiftQueriesImpl) Current(ctx context.Context, workerID uuid.UUID) (*ShiftView, error) {
	return q.repo.FindActiveByWorker(ctx, workerID)
}

type WorkerQueries interface {
	List(ctx context.Context) ([]*WorkerView, error)
}

type WorkerViewRepo interface {
	FindAll(ctx context.Context) ([]*WorkerView, error)
}

type workerQueriesImpl struct {
	repo WorkerViewRepo
}

func NewWorkerQueries(repo WorkerViewRepo) WorkerQueries {
	return &workerQueriesImpl{repo: repo}
}

func (q *workerQueriesImpl) List(ctx context.Context) ([]*WorkerView, error) {
	return q.repo.FindAll(ctx)
}
