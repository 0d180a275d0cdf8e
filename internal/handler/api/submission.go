package api

import (
	"context"
	"errors"
	"net/http"

	domsubmission "salepoint/internal/domain/submission"
	reqdto "salepoint/internal/handler/dto/request"
	resdto "salepoint/internal/handler/dto/response"
	"salepoint/internal/handler/httperr"
	"salepoint/internal/handler/middleware"
	"salepoint/internal/usecase/commands"
	"salepoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SubmissionHandler struct {
	cmds commands.SubmissionCommands
	q    queries.SubmissionQueries
}

func NewSubmissionHandler(cmds commands.SubmissionCommands, q queries.SubmissionQueries) *SubmissionHandler {
	return &SubmissionHandler{cmds: cmds, q: q}
}

// @Summary Create submission
// @Description Submit collected cash for admin approval
// @Tags submissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateSubmissionRequest true "Submission"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Router /submissions [post]
func (h *SubmissionHandler) Create(c *gin.Context) {
	workerID, ok := middleware.GetWorkerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing worker context"), "Unauthorized", nil)
		return
	}
	var req reqdto.CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	id, err := h.cmds.CreateSubmission(c.Request.Context(), commands.CreateSubmissionRequest{
		Amount:      req.Amount,
		Description: req.Description,
	}, workerID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Create submission failed", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Approve submission
// @Tags submissions
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /submissions/{id}/approve [post]
func (h *SubmissionHandler) Approve(c *gin.Context) {
	h.decide(c, h.cmds.ApproveSubmission)
}

// @Summary Reject submission
// @Tags submissions
// @Security BearerAuth
// @Param id path string true "Submission ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /submissions/{id}/reject [post]
func (h *SubmissionHandler) Reject(c *gin.Context) {
	h.decide(c, h.cmds.RejectSubmission)
}

func (h *SubmissionHandler) decide(c *gin.Context, apply func(ctx context.Context, submissionID, adminID uuid.UUID) error) {
	adminID, ok := middleware.GetWorkerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing worker context"), "Unauthorized", nil)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	if err = apply(c.Request.Context(), id, adminID); err != nil {
		switch {
		case errors.Is(err, commands.ErrSubmissionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
		case errors.Is(err, domsubmission.ErrAlreadyDecided):
			httperr.AbortWithError(c, http.StatusConflict, err, "Submission already decided", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to decide submission", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List submissions
// @Tags submissions
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {array} queries.SubmissionView
// @Router /submissions [get]
func (h *SubmissionHandler) List(c *gin.Context) {
	var status *string
	if v := c.Query("status"); v != "" {
		if !domsubmission.Status(v).IsValid() {
			httperr.AbortWithError(c, http.StatusBadRequest, errors.New("unknown status"), "Invalid status", nil)
			return
		}
		status = &v
	}

	views, err := h.q.List(c.Request.Context(), status, intQuery(c, "limit", queries.DefaultListLimit), intQuery(c, "offset", 0))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list submissions", nil)
		return
	}
	if views == nil {
		views = []*queries.SubmissionView{}
	}
	c.JSON(http.StatusOK, views)
}
