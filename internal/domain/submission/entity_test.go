//go:build unit

package submission_test

import (
	"testing"
	"time"

	"salepoint/internal/domain/submission"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPending(t *testing.T) *submission.Submission {
	t.Helper()
	s, err := submission.NewSubmission(uuid.New(), decimal.NewFromInt(500), "fuel refund", time.Now())
	require.NoError(t, err)
	return s
}

func TestNewSubmission(t *testing.T) {
	t.Run("starts pending with no decisions", func(t *testing.T) {
		s := newPending(t)
		assert.Equal(t, submission.StatusPending, s.Status())

		_, approved := s.ApprovedDecision()
		_, rejected := s.RejectedDecision()
		assert.False(t, approved)
		assert.False(t, rejected)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := submission.NewSubmission(uuid.New(), decimal.Zero, "x", time.Now())
		assert.ErrorIs(t, err, submission.ErrNonPositiveAmount)
	})

	t.Run("rejects empty description", func(t *testing.T) {
		_, err := submission.NewSubmission(uuid.New(), decimal.NewFromInt(10), "  ", time.Now())
		assert.ErrorIs(t, err, submission.ErrEmptyDescription)
	})
}

func TestSubmissionDecisions(t *testing.T) {
	admin := uuid.New()
	decidedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("approve records who and when", func(t *testing.T) {
		s := newPending(t)
		require.NoError(t, s.Approve(admin, decidedAt))

		assert.Equal(t, submission.StatusApproved, s.Status())
		d, ok := s.ApprovedDecision()
		require.True(t, ok)
		assert.Equal(t, admin, d.By)
		assert.Equal(t, decidedAt, d.At)

		_, rejected := s.RejectedDecision()
		assert.False(t, rejected)
	})

	t.Run("reject records who and when", func(t *testing.T) {
		s := newPending(t)
		require.NoError(t, s.Reject(admin, decidedAt))

		assert.Equal(t, submission.StatusRejected, s.Status())
		d, ok := s.RejectedDecision()
		require.True(t, ok)
		assert.Equal(t, admin, d.By)

		_, approved := s.ApprovedDecision()
		assert.False(t, approved)
	})

	t.Run("decided submissions are immutable", func(t *testing.T) {
		s := newPending(t)
		require.NoError(t, s.Approve(admin, decidedAt))

		assert.ErrorIs(t, s.Approve(admin, decidedAt), submission.ErrAlreadyDecided)
		assert.ErrorIs(t, s.Reject(admin, decidedAt), submission.ErrAlreadyDecided)
		assert.Equal(t, submission.StatusApproved, s.Status())
	})
}
