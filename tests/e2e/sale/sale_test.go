//go:build e2e

package sale_test

import (
	"net/http"
	"sync"
	"testing"

	"salepoint/internal/handler/dto/response"
	"salepoint/internal/usecase/queries"
	"salepoint/tests/common/authtest"
	"salepoint/tests/common/dbtest"
	"salepoint/tests/common/httptest"
	"salepoint/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

const completeSaleURL = "/api/sales/complete"

type SaleSuite struct {
	e2e.SharedSuite
}

func (s *SaleSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestSaleSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SaleSuite))
}

func productLine(id uuid.UUID, price string, qty int) map[string]any {
	return map[string]any{"itemId": id, "itemType": "product", "unitPrice": price, "quantity": qty}
}

func serviceLine(id uuid.UUID, price string) map[string]any {
	return map[string]any{"itemId": id, "itemType": "service", "unitPrice": price}
}

func saleBody(items []map[string]any, discount map[string]any) map[string]any {
	body := map[string]any{
		"items":       items,
		"paymentMode": "cash",
	}
	if discount != nil {
		body["discount"] = discount
	}
	return body
}

// =============================================================================
// TestCompleteSale - totals, receipts and persistence
// =============================================================================

func (s *SaleSuite) TestCompleteSale() {
	s.Run("Normal case: flat discount totals and first receipt number", func() {
		t := s.T()
		token := authtest.LoginWorker(t, s.Router, dbtest.CashierEmail, dbtest.DefaultPassword)

		body := saleBody([]map[string]any{
			productLine(dbtest.ProductAID, dbtest.ProductAPrice, 2),
			serviceLine(dbtest.HaircutServiceID, dbtest.HaircutPrice),
		}, map[string]any{"kind": "flat", "value": "200"})

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, completeSaleURL, body, token)
		require.Equal(t, http.StatusCreated, w.Code, "sale should complete")

		var resp response.CompleteSaleResponse
		httptest.DecodeJSON(t, w, &resp)
		require.Equal(t, "RCP000001", resp.ReceiptNumber)
		require.True(t, resp.Subtotal.Equal(decimal.NewFromInt(2500)), "subtotal %s", resp.Subtotal)
		require.True(t, resp.DiscountAmount.Equal(decimal.NewFromInt(200)), "discount %s", resp.DiscountAmount)
		require.True(t, resp.Total.Equal(decimal.NewFromInt(2300)), "total %s", resp.Total)

		stock, err := dbtest.ProductStock(s.DB, dbtest.ProductAID)
		require.NoError(t, err)
		require.Equal(t, 8, stock, "two units should have been reserved")
	})

	s.Run("Receipts are unique and increase in commit order", func() {
		t := s.T()
		token := authtest.LoginWorker(t, s.Router, dbtest.CashierEmail, dbtest.DefaultPassword)

		expected := []string{"RCP000001", "RCP000002", "RCP000003"}
		for _, want := range expected {
			body := saleBody([]map[string]any{
				productLine(dbtest.ProductAID, dbtest.ProductAPrice, 1),
			}, nil)
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, completeSaleURL, body, token)
			require.Equal(t, http.StatusCreated, w.Code)

			var resp response.CompleteSaleResponse
			httptest.DecodeJSON(t, w, &resp)
			require.Equal(t, want, resp.ReceiptNumber)
		}
	})

	s.Run("Services never touch inventory", func() {
		t := s.T()
		token := authtest.LoginWorker(t, s.Router, dbtest.CashierEmail, dbtest.DefaultPassword)

		body := saleBody([]map[string]any{
			serviceLine(dbtest.HaircutServiceID, dbtest.HaircutPrice),
		}, nil)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, completeSaleURL, body, token)
		require.Equal(t, http.StatusCreated, w.Code)

		for _, id := range []uuid.UUID{dbtest.ProductAID, dbtest.ProductBID} {
			stock, err := dbtest.ProductStock(s.DB, id)
			require.NoError(t, err)
			require.Equal(t, 10, stock)
		}
	})

	s.Run("GetByID returns the recorded sale", func() {
		t := s.T()
		token := authtest.LoginWorker(t, s.Router, dbtest.CashierEmail, dbtest.DefaultPassword)

		body := saleBody([]map[string]any{
			productLine(dbtest.ProductAID, dbtest.ProductAPrice, 2),
			serviceLine(dbtest.HaircutServiceID, dbtest.HaircutPrice),
		}, map[string]any{"kind": "percentage", "value": "10"})

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, completeSaleURL, body, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var created response.CompleteSaleResponse
		httptest.DecodeJSON(t, w, &created)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/sales/"+created.TransactionID.String(), nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var got queries.SaleView
		httptest.DecodeJSON(t, w, &got)

		want := queries.SaleView{
			ID:             created.TransactionID,
			ReceiptNumber:  "RCP000001",
			WorkerID:       dbtest.CashierID,
			WorkerUsername: "cashier",
			Lines: []queries.SaleLineView{
				{ItemID: dbtest.ProductAID, ItemType: "product", Name: "Hair Gel",
					UnitPrice: decimal.NewFromInt(500), Quantity: 2, LineTotal: decimal.NewFromInt(1000)},
				{ItemID: dbtest.HaircutServiceID, ItemType: "service", Name: "Haircut",
					UnitPrice: decimal.NewFromInt(1500), Quantity: 1, LineTotal: decimal.NewFromInt(1500)},
			},
			Subtotal:       decimal.NewFromInt(2500),
			Discount:       &queries.SaleDiscountView{Kind: "percentage", Value: decimal.NewFromInt(10)},
			DiscountAmount: decimal.NewFromInt(250),
			Total:          decimal.NewFromInt(2250),
			PaymentMode:    "cash",
		}
		if diff := cmp.Diff(want, got, decimalComparer,
			cmpopts.IgnoreFields(queries.SaleView{}, "CreatedAt")); diff != "" {
			t.Errorf("sale view mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Omitted unit price uses the catalog price", func() {
		t := s.T()
		token := authtest.LoginWorker(t, s.Router, dbtest.CashierEmail, dbtest.DefaultPassword)

		body := saleBody([]map[string]any{
			{"itemId": dbtest.ProductAID, "itemType": "product", "quantity": 1},
		}, nil)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, completeSaleURL, body, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp response.CompleteSaleResponse
		httptest.DecodeJSON(t, w, &resp)
		require.True(t, resp.Total.Equal(decimal.RequireFromString(dbtest.ProductAPrice)), "total %s", resp.Total)
	})

	s.Run("Error case: unknown item returns 404", func() {
		t := s.T()
		token := authtest.LoginWorker(t, s.Router, dbtest.CashierEmail, dbtest.DefaultPassword)

		body := saleBody([]map[string]any{
			productLine(uuid.New(), "500.00", 1),
		}, nil)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, completeSaleURL, body, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Error case: stale client price returns 400", func() {
		t := s.T()
		token := authtest.LoginWorker(t, s.Router, dbtest.CashierEmail, dbtest.DefaultPassword)

		body := saleBody([]map[string]any{
			productLine(dbtest.ProductAID, "450.00", 1),
		}, nil)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, completeSaleURL, body, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// =============================================================================
// TestCompleteSaleAtomicity - no partial effects on failure
// =============================================================================

func (s *SaleSuite) TestCompleteSaleAtomicity() {
	s.Run("Insufficient stock aborts the whole sale", func() {
		t := s.T()
		token := authtest.LoginWorker(t, s.Router, dbtest.CashierEmail, dbtest.DefaultPassword)

		body := saleBody([]map[string]any{
			productLine(dbtest.ProductAID, dbtest.ProductAPrice, 2),
			productLine(dbtest.ScarceProductID, dbtest.ScarceProductPrice, 5),
		}, nil)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, completeSaleURL, body, token)
		require.Equal(t, http.StatusConflict, w.Code)
		require.Contains(t, w.Body.String(), dbtest.ScarceProductID.String(),
			"response should name the short product")
		require.NotContains(t, w.Body.String(), dbtest.ProductAID.String(),
			"covered products must not be reported short")

		stockA, err := dbtest.ProductStock(s.DB, dbtest.ProductAID)
		require.NoError(t, err)
		require.Equal(t, 10, stockA, "reserved units must be rolled back")

		count, err := dbtest.TransactionCount(s.DB)
		require.NoError(t, err)
		require.Equal(t, 0, count, "no transaction may be recorded")

		// The failed attempt must not burn a receipt number.
		retry := saleBody([]map[string]any{
			productLine(dbtest.ProductAID, dbtest.ProductAPrice, 1),
		}, nil)
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, completeSaleURL, retry, token)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp response.CompleteSaleResponse
		httptest.DecodeJSON(t, w, &resp)
		require.Equal(t, "RCP000001", resp.ReceiptNumber)
	})

	s.Run("Flat discount above subtotal returns 400", func() {
		t := s.T()
		token := authtest.LoginWorker(t, s.Router, dbtest.CashierEmail, dbtest.DefaultPassword)

		body := saleBody([]map[string]any{
			productLine(dbtest.ProductAID, dbtest.ProductAPrice, 1),
		}, map[string]any{"kind": "flat", "value": "600"})
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, completeSaleURL, body, token)
		require.Equal(t, http.StatusBadRequest, w.Code)

		count, err := dbtest.TransactionCount(s.DB)
		require.NoError(t, err)
		require.Equal(t, 0, count)
	})
}

// =============================================================================
// TestConcurrentSales - overselling is impossible
// =============================================================================

func (s *SaleSuite) TestConcurrentSales() {
	s.Run("Two concurrent sales cannot oversell a product", func() {
		t := s.T()
		token := authtest.LoginWorker(t, s.Router, dbtest.CashierEmail, dbtest.DefaultPassword)

		// Scarce product has stock 3; two sales of 2 units race.
		body := saleBody([]map[string]any{
			productLine(dbtest.ScarceProductID, dbtest.ScarceProductPrice, 2),
		}, nil)

		codes := make([]int, 2)
		var wg sync.WaitGroup
		for i := range codes {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, completeSaleURL, body, token)
				codes[i] = w.Code
			}()
		}
		wg.Wait()

		created := 0
		conflicted := 0
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			}
		}
		require.Equal(t, 1, created, "exactly one sale must win, got %v", codes)
		require.Equal(t, 1, conflicted, "the loser must see a stock conflict, got %v", codes)

		stock, err := dbtest.ProductStock(s.DB, dbtest.ScarceProductID)
		require.NoError(t, err)
		require.Equal(t, 1, stock, "stock must never go negative")

		count, err := dbtest.TransactionCount(s.DB)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})
}
