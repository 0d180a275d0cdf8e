//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"salepoint/internal/domain/sale"
	"salepoint/internal/infra"
	"salepoint/internal/infra/db"
	"salepoint/internal/pkg/clock"
	"salepoint/internal/usecase/commands"
	"salepoint/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeState mirrors the tables the sale completion touches. The fake
// unit of work clones it per transaction and swaps the clone in only
// on success, giving real rollback semantics to the tests.
type fakeState struct {
	products map[uuid.UUID]shared.ProductSnapshot
	services map[uuid.UUID]shared.ServiceSnapshot
	counter  int64
	sales    []shared.SaleRecord
}

func (s *fakeState) clone() *fakeState {
	products := make(map[uuid.UUID]shared.ProductSnapshot, len(s.products))
	for k, v := range s.products {
		products[k] = v
	}
	services := make(map[uuid.UUID]shared.ServiceSnapshot, len(s.services))
	for k, v := range s.services {
		services[k] = v
	}
	sales := make([]shared.SaleRecord, len(s.sales))
	copy(sales, s.sales)
	return &fakeState{products: products, services: services, counter: s.counter, sales: sales}
}

type fakeUoW struct {
	mu    sync.Mutex
	state *fakeState
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{state: &fakeState{
		products: make(map[uuid.UUID]shared.ProductSnapshot),
		services: make(map[uuid.UUID]shared.ServiceSnapshot),
		counter:  1,
	}}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	work := u.state.clone()
	if err := fn(ctx, &fakeTx{state: work}); err != nil {
		return err
	}
	u.state = work
	return nil
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{state: u.state}
}

func (u *fakeUoW) snapshot() fakeState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return *u.state.clone()
}

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) Inventory() shared.InventoryRepository     { return &fakeInventory{state: t.state} }
func (t *fakeTx) Receipts() shared.ReceiptRepository        { return &fakeReceipts{state: t.state} }
func (t *fakeTx) Sales() shared.SaleRepository              { return &fakeSales{state: t.state} }
func (t *fakeTx) Reads() shared.CommandReads                { return &fakeReads{state: t.state} }
func (t *fakeTx) DB() db.DBTX                               { return nil }
func (t *fakeTx) Catalog() shared.CatalogRepository         { return nil }
func (t *fakeTx) Submissions() shared.SubmissionRepository  { return nil }
func (t *fakeTx) Expenditures() shared.ExpenditureRepository { return nil }
func (t *fakeTx) Shifts() shared.ShiftRepository            { return nil }
func (t *fakeTx) Workers() shared.WorkerRepository          { return nil }

type fakeInventory struct {
	state *fakeState
}

func (r *fakeInventory) Reserve(_ context.Context, _ db.DBTX, productID uuid.UUID, quantity int) error {
	p, ok := r.state.products[productID]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "product not found")
	}
	if p.Stock < quantity {
		return infra.NewRepoErr(infra.KindInsufficientStock, "stock would go negative")
	}
	p.Stock -= quantity
	r.state.products[productID] = p
	return nil
}

func (r *fakeInventory) AdjustStock(_ context.Context, _ db.DBTX, productID uuid.UUID, delta int) error {
	p, ok := r.state.products[productID]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "product not found")
	}
	if p.Stock+delta < 0 {
		return infra.NewRepoErr(infra.KindInsufficientStock, "stock would go negative")
	}
	p.Stock += delta
	r.state.products[productID] = p
	return nil
}

type fakeReceipts struct {
	state *fakeState
}

func (r *fakeReceipts) Allocate(_ context.Context, _ db.DBTX) (int64, error) {
	n := r.state.counter
	r.state.counter++
	return n, nil
}

type fakeSales struct {
	state *fakeState
}

func (r *fakeSales) Create(_ context.Context, _ db.DBTX, rec *shared.SaleRecord) error {
	r.state.sales = append(r.state.sales, *rec)
	return nil
}

type fakeReads struct {
	state *fakeState
}

func (r *fakeReads) ProductByID(_ context.Context, id uuid.UUID) (*shared.ProductSnapshot, error) {
	p, ok := r.state.products[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "product not found")
	}
	return &p, nil
}

func (r *fakeReads) ProductsByIDs(_ context.Context, ids []uuid.UUID) ([]shared.ProductSnapshot, error) {
	var out []shared.ProductSnapshot
	for _, id := range ids {
		if p, ok := r.state.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeReads) ServiceByID(_ context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	s, ok := r.state.services[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "service not found")
	}
	return &s, nil
}

func (r *fakeReads) ServicesByIDs(_ context.Context, ids []uuid.UUID) ([]shared.ServiceSnapshot, error) {
	var out []shared.ServiceSnapshot
	for _, id := range ids {
		if s, ok := r.state.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeReads) SubmissionByID(context.Context, uuid.UUID) (*shared.SubmissionSnapshot, error) {
	return nil, infra.NewRepoErr(infra.KindNotFound, "not implemented")
}

func (r *fakeReads) WorkerByEmail(context.Context, string) (*shared.WorkerSnapshot, error) {
	return nil, infra.NewRepoErr(infra.KindNotFound, "not implemented")
}

func (r *fakeReads) ActiveShiftByWorker(context.Context, uuid.UUID) (*shared.ShiftSnapshot, error) {
	return nil, infra.NewRepoErr(infra.KindNotFound, "not implemented")
}

func seedProduct(u *fakeUoW, name string, price int64, stock int) uuid.UUID {
	id := uuid.New()
	u.state.products[id] = shared.ProductSnapshot{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
		Stock: stock,
	}
	return id
}

func seedService(u *fakeUoW, name string, price int64) uuid.UUID {
	id := uuid.New()
	u.state.services[id] = shared.ServiceSnapshot{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
	}
	return id
}

func newSaleUseCase(u *fakeUoW) commands.SaleCommands {
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	return commands.NewSaleUseCase(u, clk)
}

func productLine(id uuid.UUID, price int64, qty int) commands.SaleLineInput {
	p := decimal.NewFromInt(price)
	return commands.SaleLineInput{
		ItemID:    id,
		ItemType:  sale.ItemTypeProduct,
		UnitPrice: &p,
		Quantity:  qty,
	}
}

func TestCompleteSale(t *testing.T) {
	ctx := context.Background()
	workerID := uuid.New()

	t.Run("totals, receipt and stock on success", func(t *testing.T) {
		uow := newFakeUoW()
		itemA := seedProduct(uow, "Item A", 500, 10)
		itemB := seedProduct(uow, "Item B", 1500, 10)
		uc := newSaleUseCase(uow)

		result, err := uc.CompleteSale(ctx, commands.CompleteSaleRequest{
			Lines: []commands.SaleLineInput{
				productLine(itemA, 500, 2),
				productLine(itemB, 1500, 1),
			},
			Discount: &commands.DiscountInput{
				Kind:  sale.DiscountFlat,
				Value: decimal.NewFromInt(200),
			},
			PaymentMode: sale.PaymentCash,
		}, workerID)
		require.NoError(t, err)

		assert.Equal(t, "RCP000001", result.ReceiptNumber)
		assert.True(t, decimal.NewFromInt(2500).Equal(result.Subtotal))
		assert.True(t, decimal.NewFromInt(200).Equal(result.DiscountAmount))
		assert.True(t, decimal.NewFromInt(2300).Equal(result.Total))

		state := uow.snapshot()
		assert.Equal(t, 8, state.products[itemA].Stock)
		assert.Equal(t, 9, state.products[itemB].Stock)
		require.Len(t, state.sales, 1)
		assert.Equal(t, "RCP000001", state.sales[0].ReceiptNumber)
		assert.Equal(t, workerID, state.sales[0].WorkerID)
	})

	t.Run("services do not touch stock", func(t *testing.T) {
		uow := newFakeUoW()
		svc := seedService(uow, "Haircut", 400)
		uc := newSaleUseCase(uow)

		svcPrice := decimal.NewFromInt(400)
		result, err := uc.CompleteSale(ctx, commands.CompleteSaleRequest{
			Lines: []commands.SaleLineInput{{
				ItemID:    svc,
				ItemType:  sale.ItemTypeService,
				UnitPrice: &svcPrice,
				Quantity:  1,
			}},
			PaymentMode: sale.PaymentMpesa,
		}, workerID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(400).Equal(result.Total))
	})

	t.Run("receipts are distinct and increasing", func(t *testing.T) {
		uow := newFakeUoW()
		item := seedProduct(uow, "Item", 100, 100)
		uc := newSaleUseCase(uow)

		var receipts []string
		for i := 0; i < 5; i++ {
			result, err := uc.CompleteSale(ctx, commands.CompleteSaleRequest{
				Lines:       []commands.SaleLineInput{productLine(item, 100, 1)},
				PaymentMode: sale.PaymentCash,
			}, workerID)
			require.NoError(t, err)
			receipts = append(receipts, result.ReceiptNumber)
		}

		seen := make(map[string]bool)
		var prev int64
		for _, r := range receipts {
			assert.False(t, seen[r], "duplicate receipt %s", r)
			seen[r] = true

			n, err := sale.ParseReceiptNumber(r)
			require.NoError(t, err)
			assert.Greater(t, n, prev)
			prev = n
		}
	})

	t.Run("insufficient stock aborts everything", func(t *testing.T) {
		uow := newFakeUoW()
		item := seedProduct(uow, "Item", 100, 3)
		uc := newSaleUseCase(uow)

		_, err := uc.CompleteSale(ctx, commands.CompleteSaleRequest{
			Lines:       []commands.SaleLineInput{productLine(item, 100, 4)},
			PaymentMode: sale.PaymentCash,
		}, workerID)

		var stockErr *commands.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, []uuid.UUID{item}, stockErr.ProductIDs)

		state := uow.snapshot()
		assert.Equal(t, 3, state.products[item].Stock)
		assert.Equal(t, int64(1), state.counter, "receipt counter must not advance on abort")
		assert.Empty(t, state.sales)
	})

	t.Run("all short products are reported", func(t *testing.T) {
		uow := newFakeUoW()
		itemA := seedProduct(uow, "A", 100, 1)
		itemB := seedProduct(uow, "B", 100, 1)
		uc := newSaleUseCase(uow)

		_, err := uc.CompleteSale(ctx, commands.CompleteSaleRequest{
			Lines: []commands.SaleLineInput{
				productLine(itemA, 100, 2),
				productLine(itemB, 100, 2),
			},
			PaymentMode: sale.PaymentCash,
		}, workerID)

		var stockErr *commands.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.ElementsMatch(t, []uuid.UUID{itemA, itemB}, stockErr.ProductIDs)
	})

	t.Run("two concurrent sales cannot oversell", func(t *testing.T) {
		uow := newFakeUoW()
		item := seedProduct(uow, "Item", 100, 3)
		uc := newSaleUseCase(uow)

		results := make(chan error, 2)
		for i := 0; i < 2; i++ {
			go func() {
				_, err := uc.CompleteSale(ctx, commands.CompleteSaleRequest{
					Lines:       []commands.SaleLineInput{productLine(item, 100, 2)},
					PaymentMode: sale.PaymentCash,
				}, workerID)
				results <- err
			}()
		}

		var succeeded, failed int
		for i := 0; i < 2; i++ {
			err := <-results
			if err == nil {
				succeeded++
				continue
			}
			var stockErr *commands.InsufficientStockError
			require.ErrorAs(t, err, &stockErr)
			failed++
		}

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, failed)

		state := uow.snapshot()
		assert.Equal(t, 1, state.products[item].Stock)
		assert.Len(t, state.sales, 1)
	})

	t.Run("unknown item", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newSaleUseCase(uow)

		_, err := uc.CompleteSale(ctx, commands.CompleteSaleRequest{
			Lines:       []commands.SaleLineInput{productLine(uuid.New(), 100, 1)},
			PaymentMode: sale.PaymentCash,
		}, workerID)
		assert.ErrorIs(t, err, commands.ErrItemNotFound)
	})

	t.Run("client price must match catalog", func(t *testing.T) {
		uow := newFakeUoW()
		item := seedProduct(uow, "Item", 100, 10)
		uc := newSaleUseCase(uow)

		_, err := uc.CompleteSale(ctx, commands.CompleteSaleRequest{
			Lines:       []commands.SaleLineInput{productLine(item, 99, 1)},
			PaymentMode: sale.PaymentCash,
		}, workerID)
		assert.ErrorIs(t, err, commands.ErrPriceMismatch)
	})

	t.Run("omitted unit price falls back to catalog", func(t *testing.T) {
		uow := newFakeUoW()
		item := seedProduct(uow, "Item", 120, 10)
		uc := newSaleUseCase(uow)

		result, err := uc.CompleteSale(ctx, commands.CompleteSaleRequest{
			Lines: []commands.SaleLineInput{{
				ItemID:   item,
				ItemType: sale.ItemTypeProduct,
				Quantity: 2,
			}},
			PaymentMode: sale.PaymentCash,
		}, workerID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(240).Equal(result.Total))
	})

	t.Run("empty sale rejected", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newSaleUseCase(uow)

		_, err := uc.CompleteSale(ctx, commands.CompleteSaleRequest{
			PaymentMode: sale.PaymentCash,
		}, workerID)
		assert.ErrorIs(t, err, commands.ErrInvalidSale)
	})

	t.Run("unknown payment mode rejected", func(t *testing.T) {
		uow := newFakeUoW()
		item := seedProduct(uow, "Item", 100, 10)
		uc := newSaleUseCase(uow)

		_, err := uc.CompleteSale(ctx, commands.CompleteSaleRequest{
			Lines:       []commands.SaleLineInput{productLine(item, 100, 1)},
			PaymentMode: sale.PaymentMode("barter"),
		}, workerID)
		assert.ErrorIs(t, err, commands.ErrInvalidSale)
	})

	t.Run("flat discount above subtotal rejected", func(t *testing.T) {
		uow := newFakeUoW()
		item := seedProduct(uow, "Item", 100, 10)
		uc := newSaleUseCase(uow)

		_, err := uc.CompleteSale(ctx, commands.CompleteSaleRequest{
			Lines: []commands.SaleLineInput{productLine(item, 100, 1)},
			Discount: &commands.DiscountInput{
				Kind:  sale.DiscountFlat,
				Value: decimal.NewFromInt(500),
			},
			PaymentMode: sale.PaymentCash,
		}, workerID)
		assert.ErrorIs(t, err, commands.ErrInvalidSale)

		state := uow.snapshot()
		assert.Equal(t, 10, state.products[item].Stock)
	})
}
