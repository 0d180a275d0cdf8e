package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
)

// Read models (DTO for read side)
type SaleLineView struct {
	ItemID    uuid.UUID       `json:"itemId"`
	ItemType  string          `json:"itemType"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type SaleDiscountView struct {
	Kind  string          `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

type SaleCustomerView struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type SaleView struct {
	ID             uuid.UUID         `json:"id"`
	ReceiptNumber  string            `json:"receiptNumber"`
	WorkerID       uuid.UUID         `json:"workerId"`
	WorkerUsername string            `json:"workerUsername"`
	Lines          []SaleLineView    `json:"items"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	Discount       *SaleDiscountView `json:"discount,omitempty"`
	DiscountAmount decimal.Decimal   `json:"discountAmount"`
	Total          decimal.Decimal   `json:"total"`
	PaymentMode    string            `json:"paymentMode"`
	Customer       *SaleCustomerView `json:"customer,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

type SaleListItem struct {
	ID            uuid.UUID       `json:"id"`
	ReceiptNumber string          `json:"receiptNumber"`
	WorkerID      uuid.UUID       `json:"workerId"`
	Total         decimal.Decimal `json:"total"`
	PaymentMode   string          `json:"paymentMode"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type ProductView struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type ServiceView struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type ExpenditureView struct {
	ID          uuid.UUID       `json:"id"`
	WorkerID    uuid.UUID       `json:"workerId"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type SubmissionView struct {
	ID          uuid.UUID       `json:"id"`
	WorkerID    uuid.UUID       `json:"workerId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	ApprovedBy  *uuid.UUID      `json:"approvedBy,omitempty"`
	ApprovedAt  *time.Time      `json:"approvedAt,omitempty"`
	RejectedBy  *uuid.UUID      `json:"rejectedBy,omitempty"`
	RejectedAt  *time.Time      `json:"rejectedAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type ShiftView struct {
	ID         uuid.UUID  `json:"id"`
	WorkerID   uuid.UUID  `json:"workerId"`
	StartedAt  time.Time  `json:"startedAt"`
	EndedAt    *time.Time `json:"endedAt,omitempty"`
	DurationMs *int64     `json:"durationMs,omitempty"`
	Active     bool       `json:"active"`
}

type WorkerView struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Active   bool      `json:"active"`
}

type WorkerBalanceView struct {
	WorkerID     uuid.UUID       `json:"workerId"`
	Username     string          `json:"username"`
	Sales        decimal.Decimal `json:"sales"`
	Expenditures decimal.Decimal `json:"expenditures"`
	Balance      decimal.Decimal `json:"balance"`
}

type SummaryView struct {
	TotalSales        decimal.Decimal `json:"totalSales"`
	TransactionCount  int64           `json:"transactionCount"`
	TotalExpenditures decimal.Decimal `json:"totalExpenditures"`
	NetBalance        decimal.Decimal `json:"netBalance"`
}
