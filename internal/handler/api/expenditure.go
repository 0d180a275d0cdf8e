package api

import (
	"errors"
	"net/http"

	reqdto "salepoint/internal/handler/dto/request"
	resdto "salepoint/internal/handler/dto/response"
	"salepoint/internal/handler/httperr"
	"salepoint/internal/handler/middleware"
	"salepoint/internal/usecase/commands"
	"salepoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExpenditureHandler struct {
	cmds commands.ExpenditureCommands
	q    queries.ExpenditureQueries
}

func NewExpenditureHandler(cmds commands.ExpenditureCommands, q queries.ExpenditureQueries) *ExpenditureHandler {
	return &ExpenditureHandler{cmds: cmds, q: q}
}

// @Summary Record expenditure
// @Tags expenditures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RecordExpenditureRequest true "Expenditure"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Router /expenditures [post]
func (h *ExpenditureHandler) Record(c *gin.Context) {
	workerID, ok := middleware.GetWorkerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing worker context"), "Unauthorized", nil)
		return
	}
	var req reqdto.RecordExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.RecordExpenditure(c.Request.Context(), commands.RecordExpenditureRequest{
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	}, workerID)
	if err != nil {
		if errors.Is(err, commands.ErrInvalidExpenditure) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid expenditure", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to record expenditure", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List expenditures
// @Tags expenditures
// @Produce json
// @Security BearerAuth
// @Param workerId query string false "Filter by worker ID (admin only)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} queries.ExpenditureView
// @Router /expenditures [get]
func (h *ExpenditureHandler) List(c *gin.Context) {
	workerID, ok := middleware.GetWorkerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing worker context"), "Unauthorized", nil)
		return
	}
	role, _ := middleware.GetWorkerRole(c)

	var filterWorker *uuid.UUID
	if v := c.Query("workerId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid worker id", nil)
			return
		}
		filterWorker = &id
	}
	if role != queries.RoleAdmin {
		filterWorker = &workerID
	}

	views, err := h.q.List(c.Request.Context(), filterWorker, intQuery(c, "limit", queries.DefaultListLimit), intQuery(c, "offset", 0))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list expenditures", nil)
		return
	}
	if views == nil {
		views = []*queries.ExpenditureView{}
	}
	c.JSON(http.StatusOK, views)
}
