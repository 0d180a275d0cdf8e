package sale

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"salepoint/internal/pkg/errs"
)

var (
	ErrEmptyCart                = errs.New("cart has no lines")
	ErrInvalidQuantity          = errs.New("quantity must be at least 1")
	ErrNegativeUnitPrice        = errs.New("unit price cannot be negative")
	ErrLineIndexOutOfRange      = errs.New("line index out of range")
	ErrServiceAlreadyInCart     = errs.New("service already in cart")
	ErrDiscountExceedsSubtotal  = errs.New("flat discount exceeds subtotal")
	ErrQuantityOnService        = errs.New("services carry no quantity")
	ErrNoDiscountApplied        = errs.New("no discount applied")
	ErrTotalWouldBecomeNegative = errs.New("total cannot be negative")
)

// Line is one cart entry. Product lines merge on itemID and carry a
// quantity; service lines are singletons with quantity fixed at 1.
type Line struct {
	itemID    uuid.UUID
	itemType  ItemType
	name      string
	unitPrice decimal.Decimal
	quantity  int
}

func (l Line) ItemID() uuid.UUID          { return l.itemID }
func (l Line) ItemType() ItemType         { return l.itemType }
func (l Line) Name() string               { return l.name }
func (l Line) UnitPrice() decimal.Decimal { return l.unitPrice }
func (l Line) Quantity() int              { return l.quantity }

func (l Line) LineTotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

// Cart accumulates lines and an optional discount for an in-progress
// sale. It holds no stock reservations; those happen at completion.
type Cart struct {
	lines    []Line
	discount *Discount
}

func NewCart() *Cart {
	return &Cart{}
}

// AddProduct merges into an existing product line for the same item,
// otherwise appends a new line.
func (c *Cart) AddProduct(itemID uuid.UUID, name string, unitPrice decimal.Decimal, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}

	for i := range c.lines {
		if c.lines[i].itemType == ItemTypeProduct && c.lines[i].itemID == itemID {
			c.lines[i].quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, Line{
		itemID:    itemID,
		itemType:  ItemTypeProduct,
		name:      name,
		unitPrice: unitPrice,
		quantity:  quantity,
	})
	return nil
}

// AddService appends a service line. A given service appears at most
// once per sale.
func (c *Cart) AddService(itemID uuid.UUID, name string, unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return ErrNegativeUnitPrice
	}

	for i := range c.lines {
		if c.lines[i].itemType == ItemTypeService && c.lines[i].itemID == itemID {
			return ErrServiceAlreadyInCart
		}
	}

	c.lines = append(c.lines, Line{
		itemID:    itemID,
		itemType:  ItemTypeService,
		name:      name,
		unitPrice: unitPrice,
		quantity:  1,
	})
	return nil
}

func (c *Cart) RemoveLine(index int) error {
	if index < 0 || index >= len(c.lines) {
		return ErrLineIndexOutOfRange
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// ApplyDiscount replaces any previously applied discount. Flat
// discounts larger than the current subtotal are rejected so the
// total can never go negative.
func (c *Cart) ApplyDiscount(d Discount) error {
	if d.Kind() == DiscountFlat && d.Value().GreaterThan(c.Subtotal()) {
		return ErrDiscountExceedsSubtotal
	}
	c.discount = &d
	return nil
}

func (c *Cart) ClearDiscount() {
	c.discount = nil
}

func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Discount() (Discount, bool) {
	if c.discount == nil {
		return Discount{}, false
	}
	return *c.discount, true
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range c.lines {
		subtotal = subtotal.Add(l.LineTotal())
	}
	return subtotal
}

func (c *Cart) DiscountAmount() decimal.Decimal {
	if c.discount == nil {
		return decimal.Zero
	}
	return c.discount.AmountFor(c.Subtotal())
}

// Totals returns subtotal, discount amount and total in one pass.
// total = subtotal - discountAmount, never negative.
func (c *Cart) Totals() (subtotal, discountAmount, total decimal.Decimal, err error) {
	if len(c.lines) == 0 {
		return decimal.Zero, decimal.Zero, decimal.Zero, ErrEmptyCart
	}

	subtotal = c.Subtotal()
	discountAmount = c.DiscountAmount()
	total = subtotal.Sub(discountAmount)
	if total.IsNegative() {
		return decimal.Zero, decimal.Zero, decimal.Zero, ErrTotalWouldBecomeNegative
	}
	return subtotal, discountAmount, total, nil
}

// ProductQuantities folds product lines into itemID -> quantity,
// the shape the inventory reservation wants. Service lines are
// skipped.
func (c *Cart) ProductQuantities() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int)
	for _, l := range c.lines {
		if l.itemType == ItemTypeProduct {
			out[l.itemID] += l.quantity
		}
	}
	return out
}
