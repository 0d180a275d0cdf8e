package response

import (
	"salepoint/internal/usecase/commands"

	"github.com/google/uuid"
)

type LoginResponse struct {
	WorkerID uuid.UUID `json:"workerId"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Token    string    `json:"token"`
}

func FromLoginResult(r *commands.LoginResult) LoginResponse {
	return LoginResponse{
		WorkerID: r.WorkerID,
		Username: r.Username,
		Role:     r.Role,
		Token:    r.Token,
	}
}
