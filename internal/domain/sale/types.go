package sale

// ItemType distinguishes catalog products, which carry stock, from
// services, which do not.
type ItemType string

const (
	ItemTypeProduct ItemType = "product"
	ItemTypeService ItemType = "service"
)

func (t ItemType) String() string {
	return string(t)
}

func (t ItemType) IsValid() bool {
	switch t {
	case ItemTypeProduct, ItemTypeService:
		return true
	default:
		return false
	}
}

type PaymentMode string

const (
	PaymentCash  PaymentMode = "cash"
	PaymentMpesa PaymentMode = "mpesa"
	PaymentCard  PaymentMode = "card"
)

func (m PaymentMode) String() string {
	return string(m)
}

func (m PaymentMode) IsValid() bool {
	switch m {
	case PaymentCash, PaymentMpesa, PaymentCard:
		return true
	default:
		return false
	}
}

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFlat       DiscountKind = "flat"
)

func (k DiscountKind) String() string {
	return string(k)
}
