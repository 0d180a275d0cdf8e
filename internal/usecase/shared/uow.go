package shared

import (
	"context"
	"time"

	"salepoint/internal/domain/catalog"
	"salepoint/internal/domain/submission"
	"salepoint/internal/domain/worker"
	"salepoint/internal/infra/db"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Inventory() InventoryRepository
	Receipts() ReceiptRepository
	Sales() SaleRepository
	Catalog() CatalogRepository
	Submissions() SubmissionRepository
	Expenditures() ExpenditureRepository
	Shifts() ShiftRepository
	Workers() WorkerRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ProductByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
	ProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]ProductSnapshot, error)
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	ServicesByIDs(ctx context.Context, ids []uuid.UUID) ([]ServiceSnapshot, error)
	SubmissionByID(ctx context.Context, id uuid.UUID) (*SubmissionSnapshot, error)
	WorkerByEmail(ctx context.Context, email string) (*WorkerSnapshot, error)
	ActiveShiftByWorker(ctx context.Context, workerID uuid.UUID) (*ShiftSnapshot, error)
}

type InventoryRepository interface {
	// Reserve decrements stock only when enough remains; the caller
	// learns about a shortage through KindInsufficientStock.
	Reserve(ctx context.Context, tx db.DBTX, productID uuid.UUID, quantity int) error
	AdjustStock(ctx context.Context, tx db.DBTX, productID uuid.UUID, delta int) error
}

type ReceiptRepository interface {
	// Allocate hands out the next receipt counter value. The row lock
	// it takes is held until the surrounding transaction commits.
	Allocate(ctx context.Context, tx db.DBTX) (int64, error)
}

type SaleRepository interface {
	Create(ctx context.Context, tx db.DBTX, rec *SaleRecord) error
}

type CatalogRepository interface {
	CreateProduct(ctx context.Context, tx db.DBTX, p *catalog.Product) error
	UpdateProduct(ctx context.Context, tx db.DBTX, id uuid.UUID, name string, price decimal.Decimal, stock int) error
	DeleteProduct(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	CreateService(ctx context.Context, tx db.DBTX, s *catalog.Service) error
	UpdateService(ctx context.Context, tx db.DBTX, id uuid.UUID, name string, price decimal.Decimal) error
	DeleteService(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type SubmissionRepository interface {
	Create(ctx context.Context, tx db.DBTX, s *submission.Submission) error
	SaveDecision(ctx context.Context, tx db.DBTX, s *submission.Submission) error
}

type ExpenditureRepository interface {
	Create(ctx context.Context, tx db.DBTX, rec *ExpenditureRecord) error
}

type ShiftRepository interface {
	Start(ctx context.Context, tx db.DBTX, workerID uuid.UUID, startedAt time.Time) (uuid.UUID, error)
	End(ctx context.Context, tx db.DBTX, shiftID uuid.UUID, endedAt time.Time, durationMs int64) error
}

type WorkerRepository interface {
	Create(ctx context.Context, tx db.DBTX, w *worker.Worker) error
}
