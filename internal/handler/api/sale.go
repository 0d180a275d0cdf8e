package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "salepoint/internal/handler/dto/request"
	resdto "salepoint/internal/handler/dto/response"
	"salepoint/internal/handler/httperr"
	"salepoint/internal/handler/middleware"
	"salepoint/internal/infra"
	"salepoint/internal/usecase/commands"
	"salepoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SaleHandler struct {
	cmds commands.SaleCommands
	q    queries.SaleQueries
}

func NewSaleHandler(cmds commands.SaleCommands, q queries.SaleQueries) *SaleHandler {
	return &SaleHandler{cmds: cmds, q: q}
}

// @Summary Complete sale
// @Description Atomically record a sale: reserve stock, allocate a receipt number and persist the transaction
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CompleteSaleRequest true "Sale request"
// @Success 201 {object} resdto.CompleteSaleResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /sales/complete [post]
func (h *SaleHandler) Complete(c *gin.Context) {
	workerID, ok := middleware.GetWorkerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing worker context"), "Unauthorized", nil)
		return
	}
	var req reqdto.CompleteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CompleteSale(c.Request.Context(), req.ToCommand(), workerID)
	if err != nil {
		h.abortCompleteErr(c, err)
		return
	}

	middleware.CountSaleCompleted()
	c.JSON(http.StatusCreated, resdto.FromCompleteSaleResult(result))
}

func (h *SaleHandler) abortCompleteErr(c *gin.Context, err error) {
	var stockErr *commands.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient stock", stockErr.ProductIDs)
	case errors.Is(err, commands.ErrItemNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Item not found", nil)
	case errors.Is(err, commands.ErrPriceMismatch):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unit price does not match catalog", nil)
	case errors.Is(err, commands.ErrInvalidSale):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid sale", nil)
	case errors.Is(err, commands.ErrSaleConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Sale could not be completed due to a conflict", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to complete sale", nil)
	}
}

// @Summary Get sale
// @Description Get a completed sale by transaction ID. Workers can read their own sales only.
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} queries.SaleView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /sales/{id} [get]
func (h *SaleHandler) GetByID(c *gin.Context) {
	workerID, ok := middleware.GetWorkerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing worker context"), "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetWorkerRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load sale", nil)
		return
	}
	// Same scoping as List: a 404 here does not reveal whether the
	// transaction exists.
	if role != queries.RoleAdmin && view.WorkerID != workerID {
		httperr.AbortWithError(c, http.StatusNotFound, errors.New("sale belongs to another worker"), "Not found", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary List sales
// @Description List completed sales, newest first. Workers see their own sales only.
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param workerId query string false "Filter by worker ID (admin only)"
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} resdto.SaleListResponse
// @Failure 400 {object} httperr.Response
// @Router /sales [get]
func (h *SaleHandler) List(c *gin.Context) {
	workerID, ok := middleware.GetWorkerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing worker context"), "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetWorkerRole(c)

	filter, err := h.parseListFilter(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	if role != queries.RoleAdmin {
		filter.WorkerID = &workerID
	}

	items, err := h.q.List(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list sales", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.NewSaleListResponse(items, filter.Limit, filter.Offset))
}

func (h *SaleHandler) parseListFilter(c *gin.Context) (queries.SaleListFilter, error) {
	var filter queries.SaleListFilter

	if v := c.Query("workerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, err
		}
		filter.WorkerID = &id
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, err
		}
		filter.To = &t
	}
	filter.Limit = intQuery(c, "limit", queries.DefaultListLimit)
	filter.Offset = intQuery(c, "offset", 0)
	return filter, nil
}
