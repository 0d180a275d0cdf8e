package queries

import (
	"context"
	"time"
)

type ReportQueries interface {
	Summary(ctx context.Context, from, to *time.Time) (*SummaryView, error)
	WorkerBalances(ctx context.Context, from, to *time.Time) ([]*WorkerBalanceView, error)
}

type ReportViewRepo interface {
	Summary(ctx context.Context, from, to *time.Time) (*SummaryView, error)
	WorkerBalances(ctx context.Context, from, to *time.Time) ([]*WorkerBalanceView, error)
}

type reportQueriesImpl struct {
	repo ReportViewRepo
}

func NewReportQueries(repo ReportViewRepo) ReportQueries {
	return &reportQueriesImpl{repo: repo}
}

func (q *reportQueriesImpl) Summary(ctx context.Context, from, to *time.Time) (*SummaryView, error) {
	return q.repo.Summary(ctx, from, to)
}

func (q *reportQueriesImpl) WorkerBalances(ctx context.Context, from, to *time.Time) ([]*WorkerBalanceView, error) {
	return q.repo.WorkerBalances(ctx, from, to)
}
