package shared

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductSnapshot struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
	Stock int
}

type ServiceSnapshot struct {
	ID    uuid.UUID
	Name  string
	Price decimal.Decimal
}

type SubmissionSnapshot struct {
	ID          uuid.UUID
	WorkerID    uuid.UUID
	Amount      decimal.Decimal
	Description string
	Status      string
	CreatedAt   time.Time
}

type WorkerSnapshot struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	Role         string
	Active       bool
}

type ShiftSnapshot struct {
	ID        uuid.UUID
	WorkerID  uuid.UUID
	StartedAt time.Time
}

// SaleLineRecord is one persisted line of a completed sale, stored as
// part of the transaction's JSONB items column.
type SaleLineRecord struct {
	ItemID    uuid.UUID       `json:"itemId"`
	ItemType  string          `json:"itemType"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type SaleDiscountRecord struct {
	Kind  string          `json:"kind"`
	Value decimal.Decimal `json:"value"`
}

type SaleCustomerRecord struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// SaleRecord is the write model for one committed sale.
type SaleRecord struct {
	ID             uuid.UUID
	ReceiptNumber  string
	WorkerID       uuid.UUID
	Lines          []SaleLineRecord
	Subtotal       decimal.Decimal
	Discount       *SaleDiscountRecord
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	PaymentMode    string
	Customer       *SaleCustomerRecord
	CreatedAt      time.Time
}

type ExpenditureRecord struct {
	ID          uuid.UUID
	WorkerID    uuid.UUID
	Category    string
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}
