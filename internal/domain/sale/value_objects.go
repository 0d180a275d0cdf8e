package sale

import (
	"strings"

	"github.com/shopspring/decimal"

	"salepoint/internal/pkg/errs"
)

var (
	ErrInvalidDiscountKind  = errs.New("invalid discount kind")
	ErrNonPositiveDiscount  = errs.New("discount value must be positive")
	ErrPercentageOutOfRange = errs.New("percentage discount cannot exceed 100")
)

var oneHundred = decimal.NewFromInt(100)

// Discount is either a percentage of the subtotal or a flat amount.
// Whether a flat amount fits under the subtotal is the cart's call,
// not the discount's.
type Discount struct {
	kind  DiscountKind
	value decimal.Decimal
}

func NewPercentageDiscount(value decimal.Decimal) (Discount, error) {
	if value.LessThanOrEqual(decimal.Zero) {
		return Discount{}, ErrNonPositiveDiscount
	}
	if value.GreaterThan(oneHundred) {
		return Discount{}, ErrPercentageOutOfRange
	}
	return Discount{kind: DiscountPercentage, value: value}, nil
}

func NewFlatDiscount(value decimal.Decimal) (Discount, error) {
	if value.LessThanOrEqual(decimal.Zero) {
		return Discount{}, ErrNonPositiveDiscount
	}
	return Discount{kind: DiscountFlat, value: value}, nil
}

func NewDiscount(kind DiscountKind, value decimal.Decimal) (Discount, error) {
	switch kind {
	case DiscountPercentage:
		return NewPercentageDiscount(value)
	case DiscountFlat:
		return NewFlatDiscount(value)
	default:
		return Discount{}, ErrInvalidDiscountKind
	}
}

func (d Discount) Kind() DiscountKind     { return d.kind }
func (d Discount) Value() decimal.Decimal { return d.value }

// AmountFor computes the monetary reduction against the given
// subtotal, rounded half-up to two decimal places for percentages.
func (d Discount) AmountFor(subtotal decimal.Decimal) decimal.Decimal {
	if d.kind == DiscountPercentage {
		return subtotal.Mul(d.value).Div(oneHundred).Round(2)
	}
	return d.value
}

// Customer is optional walk-in contact info recorded on a sale.
type Customer struct {
	name  string
	phone string
}

func NewCustomer(name, phone string) (Customer, bool) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" && phone == "" {
		return Customer{}, false
	}
	return Customer{name: name, phone: phone}, true
}

func (c Customer) Name() string  { return c.name }
func (c Customer) Phone() string { return c.phone }
