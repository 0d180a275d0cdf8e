package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"salepoint/internal/infra/db"
	"salepoint/internal/infra/readstore"
	"salepoint/internal/infra/writerepo"
	"salepoint/internal/pkg/errs"
	"salepoint/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, u.pool)
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return newCommandReads(u.pool)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Fallback to a simple calculation if crypto/rand fails
		return 0
	}
	// Safe conversion: mask high bit to ensure positive int64
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- Intentionally safe conversion after masking
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	inventoryRepo   shared.InventoryRepository
	receiptRepo     shared.ReceiptRepository
	saleRepo        shared.SaleRepository
	catalogRepo     shared.CatalogRepository
	submissionRepo  shared.SubmissionRepository
	expenditureRepo shared.ExpenditureRepository
	shiftRepo       shared.ShiftRepository
	workerRepo      shared.WorkerRepository
	commandReads    shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Inventory() shared.InventoryRepository {
	if t.inventoryRepo == nil {
		t.inventoryRepo = writerepo.NewInventoryRepository()
	}
	return t.inventoryRepo
}

func (t *pgTx) Receipts() shared.ReceiptRepository {
	if t.receiptRepo == nil {
		t.receiptRepo = writerepo.NewReceiptRepository()
	}
	return t.receiptRepo
}

func (t *pgTx) Sales() shared.SaleRepository {
	if t.saleRepo == nil {
		t.saleRepo = writerepo.NewSaleRepository()
	}
	return t.saleRepo
}

func (t *pgTx) Catalog() shared.CatalogRepository {
	if t.catalogRepo == nil {
		t.catalogRepo = writerepo.NewCatalogRepository()
	}
	return t.catalogRepo
}

func (t *pgTx) Submissions() shared.SubmissionRepository {
	if t.submissionRepo == nil {
		t.submissionRepo = writerepo.NewSubmissionRepository()
	}
	return t.submissionRepo
}

func (t *pgTx) Expenditures() shared.ExpenditureRepository {
	if t.expenditureRepo == nil {
		t.expenditureRepo = writerepo.NewExpenditureRepository()
	}
	return t.expenditureRepo
}

func (t *pgTx) Shifts() shared.ShiftRepository {
	if t.shiftRepo == nil {
		t.shiftRepo = writerepo.NewShiftRepository()
	}
	return t.shiftRepo
}

func (t *pgTx) Workers() shared.WorkerRepository {
	if t.workerRepo == nil {
		t.workerRepo = writerepo.NewWorkerRepository()
	}
	return t.workerRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = newCommandReads(t.dbtx)
	}
	return t.commandReads
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized readstores
	catalogStore    *readstore.CatalogReadStore
	submissionStore *readstore.SubmissionReadStore
	workerStore     *readstore.WorkerReadStore
	shiftStore      *readstore.ShiftReadStore
}

func newCommandReads(dbtx db.DBTX) *commandReads {
	return &commandReads{dbtx: dbtx}
}

func (r *commandReads) catalog() *readstore.CatalogReadStore {
	if r.catalogStore == nil {
		r.catalogStore = readstore.NewCatalogReadStore(r.dbtx)
	}
	return r.catalogStore
}

func (r *commandReads) ProductByID(ctx context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	return r.catalog().ProductByID(ctx, id)
}

func (r *commandReads) ProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]shared.ProductSnapshot, error) {
	return r.catalog().ProductsByIDs(ctx, ids)
}

func (r *commandReads) ServiceByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	return r.catalog().ServiceByID(ctx, id)
}

func (r *commandReads) ServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]shared.ServiceSnapshot, error) {
	return r.catalog().ServicesByIDs(ctx, ids)
}

func (r *commandReads) SubmissionByID(ctx context.Context, id uuid.UUID) (*shared.SubmissionSnapshot, error) {
	if r.submissionStore == nil {
		r.submissionStore = readstore.NewSubmissionReadStore(r.dbtx)
	}
	return r.submissionStore.SubmissionByID(ctx, id)
}

func (r *commandReads) WorkerByEmail(ctx context.Context, email string) (*shared.WorkerSnapshot, error) {
	if r.workerStore == nil {
		r.workerStore = readstore.NewWorkerReadStore(r.dbtx)
	}
	return r.workerStore.WorkerByEmail(ctx, email)
}

func (r *commandReads) ActiveShiftByWorker(ctx context.Context, workerID uuid.UUID) (*shared.ShiftSnapshot, error) {
	if r.shiftStore == nil {
		r.shiftStore = readstore.NewShiftReadStore(r.dbtx)
	}
	return r.shiftStore.ActiveShiftByWorker(ctx, workerID)
}
