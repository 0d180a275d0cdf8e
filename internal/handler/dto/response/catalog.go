package response

import (
	"time"

	"salepoint/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"
)

type ProductResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type ServiceResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func FromProductView(v *queries.ProductView) ProductResponse {
	var resp ProductResponse
	_ = copier.Copy(&resp, v)
	return resp
}

func FromProductViews(views []*queries.ProductView) []ProductResponse {
	resps := make([]ProductResponse, 0, len(views))
	for _, v := range views {
		resps = append(resps, FromProductView(v))
	}
	return resps
}

func FromServiceView(v *queries.ServiceView) ServiceResponse {
	var resp ServiceResponse
	_ = copier.Copy(&resp, v)
	return resp
}

func FromServiceViews(views []*queries.ServiceView) []ServiceResponse {
	resps := make([]ServiceResponse, 0, len(views))
	for _, v := range views {
		resps = append(resps, FromServiceView(v))
	}
	return resps
}
