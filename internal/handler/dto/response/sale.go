package response

import (
	"salepoint/internal/usecase/commands"
	"salepoint/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CompleteSaleResponse struct {
	TransactionID  uuid.UUID       `json:"transactionId"`
	ReceiptNumber  string          `json:"receiptNumber"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
}

func FromCompleteSaleResult(r *commands.CompleteSaleResult) CompleteSaleResponse {
	return CompleteSaleResponse{
		TransactionID:  r.TransactionID,
		ReceiptNumber:  r.ReceiptNumber,
		Subtotal:       r.Subtotal,
		DiscountAmount: r.DiscountAmount,
		Total:          r.Total,
	}
}

type SaleListResponse struct {
	Sales  []*queries.SaleListItem `json:"sales"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

func NewSaleListResponse(items []*queries.SaleListItem, limit, offset int) SaleListResponse {
	if items == nil {
		items = []*queries.SaleListItem{}
	}
	return SaleListResponse{Sales: items, Limit: limit, Offset: offset}
}
