package request

import (
	"salepoint/internal/domain/sale"
	"salepoint/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one cart line. UnitPrice is optional; when
// present it must match the catalog price at completion time.
type SaleItemRequest struct {
	ItemID    uuid.UUID        `json:"itemId" binding:"required"`
	ItemType  string           `json:"itemType" binding:"required,oneof=product service"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	Quantity  int              `json:"quantity" binding:"omitempty,min=1"`
}

type SaleDiscountRequest struct {
	Kind  string          `json:"kind" binding:"required,oneof=percentage flat"`
	Value decimal.Decimal `json:"value" binding:"required"`
}

type SaleCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type CompleteSaleRequest struct {
	Items       []SaleItemRequest    `json:"items" binding:"required,min=1,dive"`
	Discount    *SaleDiscountRequest `json:"discount,omitempty"`
	PaymentMode string               `json:"paymentMode" binding:"required,oneof=cash mpesa card"`
	Customer    *SaleCustomerRequest `json:"customer,omitempty"`
}

func (r CompleteSaleRequest) ToCommand() commands.CompleteSaleRequest {
	lines := make([]commands.SaleLineInput, 0, len(r.Items))
	for _, item := range r.Items {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		lines = append(lines, commands.SaleLineInput{
			ItemID:    item.ItemID,
			ItemType:  sale.ItemType(item.ItemType),
			UnitPrice: item.UnitPrice,
			Quantity:  quantity,
		})
	}

	cmd := commands.CompleteSaleRequest{
		Lines:       lines,
		PaymentMode: sale.PaymentMode(r.PaymentMode),
	}
	if r.Discount != nil {
		cmd.Discount = &commands.DiscountInput{
			Kind:  sale.DiscountKind(r.Discount.Kind),
			Value: r.Discount.Value,
		}
	}
	if r.Customer != nil {
		cmd.Customer = &commands.CustomerInput{
			Name:  r.Customer.Name,
			Phone: r.Customer.Phone,
		}
	}
	return cmd
}
