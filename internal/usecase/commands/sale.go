package commands

import (
	"context"
	"fmt"
	"sort"

	"salepoint/internal/domain/sale"
	"salepoint/internal/infra"
	"salepoint/internal/pkg/clock"
	"salepoint/internal/pkg/errs"
	"salepoint/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrItemNotFound     = errs.New("item not found")
	ErrPriceMismatch    = errs.New("unit price does not match catalog")
	ErrInvalidSale      = errs.New("invalid sale")
	ErrStoreUnavailable = errs.New("store unavailable")
	ErrSaleConflict     = errs.New("sale conflict")
)

// InsufficientStockError reports every product line that could not be
// covered by the remaining stock.
type InsufficientStockError struct {
	ProductIDs []uuid.UUID
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %d product(s)", len(e.ProductIDs))
}

// SaleLineInput carries one requested line. UnitPrice is an optional
// sanity check against the catalog; nil means the client trusts the
// catalog price.
type SaleLineInput struct {
	ItemID    uuid.UUID
	ItemType  sale.ItemType
	UnitPrice *decimal.Decimal
	Quantity  int
}

type DiscountInput struct {
	Kind  sale.DiscountKind
	Value decimal.Decimal
}

type CustomerInput struct {
	Name  string
	Phone string
}

type CompleteSaleRequest struct {
	Lines       []SaleLineInput
	Discount    *DiscountInput
	PaymentMode sale.PaymentMode
	Customer    *CustomerInput
}

type CompleteSaleResult struct {
	TransactionID  uuid.UUID
	ReceiptNumber  string
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

type SaleCommands interface {
	CompleteSale(ctx context.Context, req CompleteSaleRequest, workerID uuid.UUID) (*CompleteSaleResult, error)
}

type saleUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSaleUseCase(uow shared.UnitOfWork, clk clock.Clock) SaleCommands {
	return &saleUseCaseImpl{uow: uow, clock: clk}
}

// CompleteSale runs the whole completion as one transaction: stock
// reservation, receipt allocation and transaction insert either all
// land or none do. The receipt counter row lock is taken last and
// held to commit, which keeps receipt numbers increasing in commit
// order.
func (uc *saleUseCaseImpl) CompleteSale(
	ctx context.Context,
	req CompleteSaleRequest,
	workerID uuid.UUID,
) (*CompleteSaleResult, error) {
	if !req.PaymentMode.IsValid() {
		return nil, errs.Wrap(ErrInvalidSale, "unknown payment mode")
	}
	if len(req.Lines) == 0 {
		return nil, errs.Mark(sale.ErrEmptyCart, ErrInvalidSale)
	}

	var result *CompleteSaleResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cart, err := uc.buildCart(ctx, tx, req.Lines)
		if err != nil {
			return err
		}

		if req.Discount != nil {
			d, derr := sale.NewDiscount(req.Discount.Kind, req.Discount.Value)
			if derr != nil {
				return errs.Mark(derr, ErrInvalidSale)
			}
			if derr = cart.ApplyDiscount(d); derr != nil {
				return errs.Mark(derr, ErrInvalidSale)
			}
		}

		subtotal, discountAmount, total, err := cart.Totals()
		if err != nil {
			return errs.Mark(err, ErrInvalidSale)
		}

		if err = uc.reserveStock(ctx, tx, cart); err != nil {
			return err
		}

		counter, err := tx.Receipts().Allocate(ctx, tx.DB())
		if err != nil {
			return wrapStoreErr(err)
		}
		receiptNumber, err := sale.FormatReceiptNumber(counter)
		if err != nil {
			return err
		}

		rec := uc.buildSaleRecord(cart, req, workerID, receiptNumber, subtotal, discountAmount, total)
		if err = tx.Sales().Create(ctx, tx.DB(), rec); err != nil {
			return wrapStoreErr(err)
		}

		result = &CompleteSaleResult{
			TransactionID:  rec.ID,
			ReceiptNumber:  receiptNumber,
			Subtotal:       subtotal,
			DiscountAmount: discountAmount,
			Total:          total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// buildCart resolves every requested line against the catalog inside
// the transaction. Names and prices come from the catalog row, not
// the client; a client price that is present and disagrees rejects
// the sale.
func (uc *saleUseCaseImpl) buildCart(ctx context.Context, tx shared.Tx, lines []SaleLineInput) (*sale.Cart, error) {
	var productIDs, serviceIDs []uuid.UUID
	for _, l := range lines {
		switch l.ItemType {
		case sale.ItemTypeProduct:
			productIDs = append(productIDs, l.ItemID)
		case sale.ItemTypeService:
			serviceIDs = append(serviceIDs, l.ItemID)
		default:
			return nil, errs.Wrap(ErrInvalidSale, "unknown item type")
		}
	}

	products := make(map[uuid.UUID]shared.ProductSnapshot)
	if len(productIDs) > 0 {
		snaps, err := tx.Reads().ProductsByIDs(ctx, productIDs)
		if err != nil {
			return nil, wrapStoreErr(err)
		}
		for _, s := range snaps {
			products[s.ID] = s
		}
	}

	services := make(map[uuid.UUID]shared.ServiceSnapshot)
	if len(serviceIDs) > 0 {
		snaps, err := tx.Reads().ServicesByIDs(ctx, serviceIDs)
		if err != nil {
			return nil, wrapStoreErr(err)
		}
		for _, s := range snaps {
			services[s.ID] = s
		}
	}

	cart := sale.NewCart()
	for _, l := range lines {
		switch l.ItemType {
		case sale.ItemTypeProduct:
			snap, ok := products[l.ItemID]
			if !ok {
				return nil, ErrItemNotFound
			}
			if l.UnitPrice != nil && !snap.Price.Equal(*l.UnitPrice) {
				return nil, ErrPriceMismatch
			}
			if err := cart.AddProduct(snap.ID, snap.Name, snap.Price, l.Quantity); err != nil {
				return nil, errs.Mark(err, ErrInvalidSale)
			}
		case sale.ItemTypeService:
			snap, ok := services[l.ItemID]
			if !ok {
				return nil, ErrItemNotFound
			}
			if l.UnitPrice != nil && !snap.Price.Equal(*l.UnitPrice) {
				return nil, ErrPriceMismatch
			}
			if err := cart.AddService(snap.ID, snap.Name, snap.Price); err != nil {
				return nil, errs.Mark(err, ErrInvalidSale)
			}
		}
	}
	return cart, nil
}

// reserveStock decrements each product row with a conditional update.
// Rows are visited in a stable order so concurrent sales lock them
// consistently. Every shortage is collected before giving up.
func (uc *saleUseCaseImpl) reserveStock(ctx context.Context, tx shared.Tx, cart *sale.Cart) error {
	quantities := cart.ProductQuantities()
	if len(quantities) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	var short []uuid.UUID
	for _, id := range ids {
		err := tx.Inventory().Reserve(ctx, tx.DB(), id, quantities[id])
		switch {
		case err == nil:
		case infra.IsKind(err, infra.KindInsufficientStock):
			short = append(short, id)
		case infra.IsKind(err, infra.KindNotFound):
			return ErrItemNotFound
		default:
			return wrapStoreErr(err)
		}
	}
	if len(short) > 0 {
		return &InsufficientStockError{ProductIDs: short}
	}
	return nil
}

func (uc *saleUseCaseImpl) buildSaleRecord(
	cart *sale.Cart,
	req CompleteSaleRequest,
	workerID uuid.UUID,
	receiptNumber string,
	subtotal, discountAmount, total decimal.Decimal,
) *shared.SaleRecord {
	lines := cart.Lines()
	recLines := make([]shared.SaleLineRecord, 0, len(lines))
	for _, l := range lines {
		recLines = append(recLines, shared.SaleLineRecord{
			ItemID:    l.ItemID(),
			ItemType:  l.ItemType().String(),
			Name:      l.Name(),
			UnitPrice: l.UnitPrice(),
			Quantity:  l.Quantity(),
			LineTotal: l.LineTotal(),
		})
	}

	var discountRec *shared.SaleDiscountRecord
	if d, ok := cart.Discount(); ok {
		discountRec = &shared.SaleDiscountRecord{
			Kind:  d.Kind().String(),
			Value: d.Value(),
		}
	}

	var customerRec *shared.SaleCustomerRecord
	if req.Customer != nil {
		if c, ok := sale.NewCustomer(req.Customer.Name, req.Customer.Phone); ok {
			customerRec = &shared.SaleCustomerRecord{Name: c.Name(), Phone: c.Phone()}
		}
	}

	return &shared.SaleRecord{
		ID:             uuid.New(),
		ReceiptNumber:  receiptNumber,
		WorkerID:       workerID,
		Lines:          recLines,
		Subtotal:       subtotal,
		Discount:       discountRec,
		DiscountAmount: discountAmount,
		Total:          total,
		PaymentMode:    req.PaymentMode.String(),
		Customer:       customerRec,
		CreatedAt:      uc.clock.Now(),
	}
}

func wrapStoreErr(err error) error {
	if infra.IsKind(err, infra.KindConflict) {
		return errs.Mark(err, ErrSaleConflict)
	}
	return errs.Mark(err, ErrStoreUnavailable)
}
