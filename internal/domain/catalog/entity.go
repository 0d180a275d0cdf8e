package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"salepoint/internal/pkg/errs"
)

var (
	ErrEmptyName     = errs.New("name cannot be empty")
	ErrNegativePrice = errs.New("price cannot be negative")
	ErrNegativeStock = errs.New("stock cannot be negative")
)

// Product is a stocked catalog item. Stock here is a snapshot for
// display and validation; the authoritative decrement happens in the
// database at sale completion.
type Product struct {
	id    uuid.UUID
	name  string
	price decimal.Decimal
	stock int
}

func NewProduct(name string, price decimal.Decimal, stock int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	return &Product{
		id:    uuid.New(),
		name:  name,
		price: price,
		stock: stock,
	}, nil
}

// ReconstructProduct rebuilds a product from persisted state.
func ReconstructProduct(id uuid.UUID, name string, price decimal.Decimal, stock int) *Product {
	return &Product{id: id, name: name, price: price, stock: stock}
}

func (p *Product) ID() uuid.UUID          { return p.id }
func (p *Product) Name() string           { return p.name }
func (p *Product) Price() decimal.Decimal { return p.price }
func (p *Product) Stock() int             { return p.stock }

func (p *Product) HasStockFor(quantity int) bool {
	return quantity > 0 && p.stock >= quantity
}

// Service is an unstocked catalog item, priced per performance.
type Service struct {
	id    uuid.UUID
	name  string
	price decimal.Decimal
}

func NewService(name string, price decimal.Decimal) (*Service, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	return &Service{
		id:    uuid.New(),
		name:  name,
		price: price,
	}, nil
}

func ReconstructService(id uuid.UUID, name string, price decimal.Decimal) *Service {
	return &Service{id: id, name: name, price: price}
}

func (s *Service) ID() uuid.UUID          { return s.id }
func (s *Service) Name() string           { return s.name }
func (s *Service) Price() decimal.Decimal { return s.price }
