package api

import (
	"errors"
	"net/http"

	reqdto "salepoint/internal/handler/dto/request"
	resdto "salepoint/internal/handler/dto/response"
	"salepoint/internal/handler/httperr"
	"salepoint/internal/usecase/commands"
	"salepoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type WorkerHandler struct {
	cmds commands.WorkerCommands
	q    queries.WorkerQueries
}

func NewWorkerHandler(cmds commands.WorkerCommands, q queries.WorkerQueries) *WorkerHandler {
	return &WorkerHandler{cmds: cmds, q: q}
}

// @Summary Create worker
// @Tags workers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateWorkerRequest true "Worker"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /workers [post]
func (h *WorkerHandler) Create(c *gin.Context) {
	var req reqdto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.CreateWorker(c.Request.Context(), commands.CreateWorkerRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, commands.ErrDuplicateWorker) {
			httperr.AbortWithError(c, http.StatusConflict, err, "Worker already exists", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Create worker failed", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List workers
// @Tags workers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.WorkerResponse
// @Router /workers [get]
func (h *WorkerHandler) List(c *gin.Context) {
	views, err := h.q.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list workers", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWorkerViews(views))
}
