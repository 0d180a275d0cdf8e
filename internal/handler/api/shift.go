package api

import (
	"errors"
	"net/http"

	resdto "salepoint/internal/handler/dto/response"
	"salepoint/internal/handler/httperr"
	"salepoint/internal/handler/middleware"
	"salepoint/internal/infra"
	"salepoint/internal/usecase/commands"
	"salepoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ShiftHandler struct {
	cmds commands.ShiftCommands
	q    queries.ShiftQueries
}

func NewShiftHandler(cmds commands.ShiftCommands, q queries.ShiftQueries) *ShiftHandler {
	return &ShiftHandler{cmds: cmds, q: q}
}

// @Summary Start shift
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Success 201 {object} resdto.StartShiftResponse
// @Failure 409 {object} httperr.Response
// @Router /shifts/start [post]
func (h *ShiftHandler) Start(c *gin.Context) {
	workerID, ok := middleware.GetWorkerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing worker context"), "Unauthorized", nil)
		return
	}

	result, err := h.cmds.StartShift(c.Request.Context(), workerID)
	if err != nil {
		if errors.Is(err, commands.ErrShiftAlreadyActive) {
			httperr.AbortWithError(c, http.StatusConflict, err, "Shift already active", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to start shift", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromStartShiftResult(result))
}

// @Summary End shift
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.EndShiftResponse
// @Failure 404 {object} httperr.Response
// @Router /shifts/end [post]
func (h *ShiftHandler) End(c *gin.Context) {
	workerID, ok := middleware.GetWorkerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing worker context"), "Unauthorized", nil)
		return
	}

	result, err := h.cmds.EndShift(c.Request.Context(), workerID)
	if err != nil {
		if errors.Is(err, commands.ErrNoActiveShift) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "No active shift", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to end shift", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEndShiftResult(result))
}

// @Summary Current shift
// @Tags shifts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} queries.ShiftView
// @Failure 404 {object} httperr.Response
// @Router /shifts/current [get]
func (h *ShiftHandler) Current(c *gin.Context) {
	workerID, ok := middleware.GetWorkerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing worker context"), "Unauthorized", nil)
		return
	}

	view, err := h.q.Current(c.Request.Context(), workerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "No active shift", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load shift", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}
