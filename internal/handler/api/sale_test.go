//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"salepoint/internal/domain/worker"
	"salepoint/internal/handler/api"
	resdto "salepoint/internal/handler/dto/response"
	"salepoint/internal/infra"
	"salepoint/internal/usecase/commands"
	"salepoint/internal/usecase/queries"
	"salepoint/tests/common/httptest"
	commandsmock "salepoint/tests/mock/commands"
	queriesmock "salepoint/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SaleHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSaleCommands
	mockQueries  *queriesmock.MockSaleQueries
	handler      *api.SaleHandler
	workerID     uuid.UUID
}

func (s *SaleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSaleCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSaleQueries(s.mockCtrl)
	s.handler = api.NewSaleHandler(s.mockCommands, s.mockQueries)
	s.workerID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("worker_id", s.workerID)
		c.Set("worker_role", worker.RoleWorker)
		c.Next()
	}

	s.router.POST("/sales/complete", authMiddleware, s.handler.Complete)
	s.router.GET("/sales", authMiddleware, s.handler.List)
	s.router.GET("/sales/:id", authMiddleware, s.handler.GetByID)
}

func (s *SaleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSaleHandlerSuite(t *testing.T) {
	suite.Run(t, new(SaleHandlerTestSuite))
}

func validSaleBody(productID, serviceID uuid.UUID) map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{"itemId": productID, "itemType": "product", "unitPrice": "500", "quantity": 2},
			{"itemId": serviceID, "itemType": "service", "unitPrice": "1500"},
		},
		"discount":    map[string]any{"kind": "flat", "value": "200"},
		"paymentMode": "cash",
	}
}

// ================================================================================
// TestComplete
// ================================================================================

func (s *SaleHandlerTestSuite) TestComplete() {
	url := "/sales/complete"
	productID := uuid.New()
	serviceID := uuid.New()
	body := validSaleBody(productID, serviceID)

	s.Run("success: returns 201 with totals and receipt number", func() {
		result := &commands.CompleteSaleResult{
			TransactionID:  uuid.New(),
			ReceiptNumber:  "RCP000001",
			Subtotal:       decimal.NewFromInt(2500),
			DiscountAmount: decimal.NewFromInt(200),
			Total:          decimal.NewFromInt(2300),
		}
		s.mockCommands.EXPECT().CompleteSale(gomock.Any(), gomock.Any(), s.workerID).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		s.Equal(http.StatusCreated, rec.Code)

		var resp resdto.CompleteSaleResponse
		httptest.DecodeJSON(s.T(), rec, &resp)
		s.Equal("RCP000001", resp.ReceiptNumber)
		s.True(resp.Subtotal.Equal(decimal.NewFromInt(2500)))
		s.True(resp.DiscountAmount.Equal(decimal.NewFromInt(200)))
		s.True(resp.Total.Equal(decimal.NewFromInt(2300)))
	})

	s.Run("validation: returns 400 when items are missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"paymentMode": "cash"}, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("validation: returns 400 for unknown payment mode", func() {
		bad := validSaleBody(productID, serviceID)
		bad["paymentMode"] = "barter"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bad, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("validation: returns 400 for unknown item type", func() {
		bad := validSaleBody(productID, serviceID)
		bad["items"] = []map[string]any{
			{"itemId": productID, "itemType": "subscription", "unitPrice": "500", "quantity": 1},
		}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bad, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("auth: returns 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("error mapping: unknown item returns 404", func() {
		s.mockCommands.EXPECT().CompleteSale(gomock.Any(), gomock.Any(), s.workerID).
			Return(nil, commands.ErrItemNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("error mapping: price mismatch returns 400", func() {
		s.mockCommands.EXPECT().CompleteSale(gomock.Any(), gomock.Any(), s.workerID).
			Return(nil, commands.ErrPriceMismatch).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error mapping: insufficient stock returns 409 with offending ids", func() {
		shortID := uuid.New()
		s.mockCommands.EXPECT().CompleteSale(gomock.Any(), gomock.Any(), s.workerID).
			Return(nil, &commands.InsufficientStockError{ProductIDs: []uuid.UUID{shortID}}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
		s.Contains(rec.Body.String(), shortID.String())
	})

	s.Run("error mapping: sale conflict returns 409", func() {
		s.mockCommands.EXPECT().CompleteSale(gomock.Any(), gomock.Any(), s.workerID).
			Return(nil, commands.ErrSaleConflict).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		s.Equal(http.StatusConflict, rec.Code)
	})

	s.Run("error mapping: store failure returns 500", func() {
		s.mockCommands.EXPECT().CompleteSale(gomock.Any(), gomock.Any(), s.workerID).
			Return(nil, commands.ErrStoreUnavailable).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}

// ================================================================================
// TestGetByID
// ================================================================================

func (s *SaleHandlerTestSuite) TestGetByID() {
	s.Run("success: returns 200 with the sale view", func() {
		id := uuid.New()
		view := &queries.SaleView{ID: id, WorkerID: s.workerID, ReceiptNumber: "RCP000042", Total: decimal.NewFromInt(2300)}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sales/"+id.String(), nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "RCP000042")
	})

	s.Run("another worker's sale returns 404", func() {
		id := uuid.New()
		view := &queries.SaleView{ID: id, WorkerID: uuid.New(), ReceiptNumber: "RCP000099"}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sales/"+id.String(), nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
		s.NotContains(rec.Body.String(), "RCP000099")
	})

	s.Run("returns 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sales/not-a-uuid", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("returns 404 when the sale does not exist", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, infra.NewRepoErr(infra.KindNotFound, "sale not found")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sales/"+id.String(), nil, "bearer-token")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *SaleHandlerTestSuite) TestList() {
	s.Run("workers are scoped to their own sales", func() {
		var captured queries.SaleListFilter
		s.mockQueries.EXPECT().List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filter queries.SaleListFilter) ([]*queries.SaleListItem, error) {
				captured = filter
				return []*queries.SaleListItem{}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sales?workerId="+uuid.NewString(), nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
		s.Require().NotNil(captured.WorkerID)
		s.Equal(s.workerID, *captured.WorkerID)
	})

	s.Run("returns 400 for a malformed time bound", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/sales?from=yesterday", nil, "bearer-token")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
