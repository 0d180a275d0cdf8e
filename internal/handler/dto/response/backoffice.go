package response

import (
	"salepoint/internal/usecase/commands"
	"salepoint/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type WorkerResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Active   bool      `json:"active"`
}

func FromWorkerView(v *queries.WorkerView) WorkerResponse {
	var resp WorkerResponse
	_ = copier.Copy(&resp, v)
	return resp
}

func FromWorkerViews(views []*queries.WorkerView) []WorkerResponse {
	resps := make([]WorkerResponse, 0, len(views))
	for _, v := range views {
		resps = append(resps, FromWorkerView(v))
	}
	return resps
}

type StartShiftResponse struct {
	ShiftID   uuid.UUID `json:"shiftId"`
	StartedAt int64     `json:"startedAt"`
}

func FromStartShiftResult(r *commands.StartShiftResult) StartShiftResponse {
	return StartShiftResponse{ShiftID: r.ShiftID, StartedAt: r.StartedAt}
}

type EndShiftResponse struct {
	ShiftID    uuid.UUID `json:"shiftId"`
	DurationMs int64     `json:"durationMs"`
}

func FromEndShiftResult(r *commands.EndShiftResult) EndShiftResponse {
	return EndShiftResponse{ShiftID: r.ShiftID, DurationMs: r.DurationMs}
}
