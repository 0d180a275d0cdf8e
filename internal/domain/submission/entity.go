package submission

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"salepoint/internal/pkg/errs"
)

var (
	ErrNonPositiveAmount = errs.New("amount must be positive")
	ErrEmptyDescription  = errs.New("description cannot be empty")
	ErrAlreadyDecided    = errs.New("submission already decided")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Decision records who settled a submission and when. It exists only
// on approved or rejected submissions.
type Decision struct {
	By uuid.UUID
	At time.Time
}

// Submission is a worker's cash request awaiting an admin decision.
// Transitions are one-way: pending -> approved or pending -> rejected.
type Submission struct {
	id          uuid.UUID
	workerID    uuid.UUID
	amount      decimal.Decimal
	description string
	status      Status
	approved    *Decision
	rejected    *Decision
	createdAt   time.Time
}

func NewSubmission(workerID uuid.UUID, amount decimal.Decimal, description string, now time.Time) (*Submission, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrNonPositiveAmount
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	return &Submission{
		id:          uuid.New(),
		workerID:    workerID,
		amount:      amount,
		description: description,
		status:      StatusPending,
		createdAt:   now,
	}, nil
}

// Reconstruct rebuilds a submission from persisted state.
func Reconstruct(
	id, workerID uuid.UUID,
	amount decimal.Decimal,
	description string,
	status Status,
	approved, rejected *Decision,
	createdAt time.Time,
) *Submission {
	return &Submission{
		id:          id,
		workerID:    workerID,
		amount:      amount,
		description: description,
		status:      status,
		approved:    approved,
		rejected:    rejected,
		createdAt:   createdAt,
	}
}

func (s *Submission) ID() uuid.UUID           { return s.id }
func (s *Submission) WorkerID() uuid.UUID     { return s.workerID }
func (s *Submission) Amount() decimal.Decimal { return s.amount }
func (s *Submission) Description() string     { return s.description }
func (s *Submission) Status() Status          { return s.status }
func (s *Submission) CreatedAt() time.Time    { return s.createdAt }

func (s *Submission) ApprovedDecision() (Decision, bool) {
	if s.approved == nil {
		return Decision{}, false
	}
	return *s.approved, true
}

func (s *Submission) RejectedDecision() (Decision, bool) {
	if s.rejected == nil {
		return Decision{}, false
	}
	return *s.rejected, true
}

func (s *Submission) Approve(adminID uuid.UUID, now time.Time) error {
	if s.status != StatusPending {
		return ErrAlreadyDecided
	}
	s.status = StatusApproved
	s.approved = &Decision{By: adminID, At: now}
	return nil
}

func (s *Submission) Reject(adminID uuid.UUID, now time.Time) error {
	if s.status != StatusPending {
		return ErrAlreadyDecided
	}
	s.status = StatusRejected
	s.rejected = &Decision{By: adminID, At: now}
	return nil
}
