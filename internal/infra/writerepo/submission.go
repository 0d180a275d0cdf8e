package writerepo

import (
	"context"

	"salepoint/internal/domain/submission"
	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
	"salepoint/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type SubmissionRepository struct{}

func NewSubmissionRepository() *SubmissionRepository {
	return &SubmissionRepository{}
}

func (r *SubmissionRepository) Create(ctx context.Context, dbtx db.DBTX, s *submission.Submission) error {
	_, err := dbtx.Exec(ctx,
		`INSERT INTO submissions (id, worker_id, amount, description, status, created_at)
		 VALUES ($1, $2, $3::numeric, $4, $5, $6)`,
		s.ID(), s.WorkerID(), pgconv.DecimalToText(s.Amount()), s.Description(), string(s.Status()), s.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to create submission", err)
	}
	return nil
}

// SaveDecision persists an approve or reject outcome. The status
// guard in the WHERE clause makes racing decisions lose cleanly.
func (r *SubmissionRepository) SaveDecision(ctx context.Context, dbtx db.DBTX, s *submission.Submission) error {
	var (
		tag pgconn.CommandTag
		err error
	)

	switch s.Status() {
	case submission.StatusApproved:
		d, ok := s.ApprovedDecision()
		if !ok {
			return infra.NewRepoErr(infra.KindDBFailure, "approved submission missing decision")
		}
		tag, err = dbtx.Exec(ctx,
			`UPDATE submissions SET status = 'approved', approved_by = $2, approved_at = $3
			 WHERE id = $1 AND status = 'pending'`,
			s.ID(), d.By, d.At)
	case submission.StatusRejected:
		d, ok := s.RejectedDecision()
		if !ok {
			return infra.NewRepoErr(infra.KindDBFailure, "rejected submission missing decision")
		}
		tag, err = dbtx.Exec(ctx,
			`UPDATE submissions SET status = 'rejected', rejected_by = $2, rejected_at = $3
			 WHERE id = $1 AND status = 'pending'`,
			s.ID(), d.By, d.At)
	default:
		return infra.NewRepoErr(infra.KindDBFailure, "submission has no decision to save")
	}

	if err != nil {
		return infra.WrapRepoErr("failed to save submission decision", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindConflict, "submission no longer pending")
	}
	return nil
}
