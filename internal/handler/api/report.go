package api

import (
	"net/http"
	"time"

	"salepoint/internal/handler/httperr"
	"salepoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	q queries.ReportQueries
}

func NewReportHandler(q queries.ReportQueries) *ReportHandler {
	return &ReportHandler{q: q}
}

// @Summary Sales summary
// @Description Aggregate sales, transaction count, expenditures and net balance over an optional period
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Success 200 {object} queries.SummaryView
// @Failure 400 {object} httperr.Response
// @Router /reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	from, to, err := parsePeriod(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	view, err := h.q.Summary(c.Request.Context(), from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build summary", nil)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Worker balances
// @Description Per-worker sales and expenditure totals over an optional period
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string false "RFC3339 lower bound"
// @Param to query string false "RFC3339 upper bound"
// @Success 200 {array} queries.WorkerBalanceView
// @Failure 400 {object} httperr.Response
// @Router /reports/balances [get]
func (h *ReportHandler) WorkerBalances(c *gin.Context) {
	from, to, err := parsePeriod(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	views, err := h.q.WorkerBalances(c.Request.Context(), from, to)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build balances", nil)
		return
	}
	if views == nil {
		views = []*queries.WorkerBalanceView{}
	}
	c.JSON(http.StatusOK, views)
}

func parsePeriod(c *gin.Context) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}
