//go:build unit

package catalog_test

import (
	"testing"

	"salepoint/internal/domain/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("valid product", func(t *testing.T) {
		p, err := catalog.NewProduct("Soda", decimal.NewFromInt(50), 10)
		require.NoError(t, err)
		assert.Equal(t, "Soda", p.Name())
		assert.Equal(t, 10, p.Stock())
	})

	t.Run("trims name", func(t *testing.T) {
		p, err := catalog.NewProduct("  Soda  ", decimal.NewFromInt(50), 10)
		require.NoError(t, err)
		assert.Equal(t, "Soda", p.Name())
	})

	cases := []struct {
		name    string
		product string
		price   int64
		stock   int
		errIs   error
	}{
		{"empty name", "", 50, 10, catalog.ErrEmptyName},
		{"whitespace name", "   ", 50, 10, catalog.ErrEmptyName},
		{"negative price", "Soda", -1, 10, catalog.ErrNegativePrice},
		{"negative stock", "Soda", 50, -1, catalog.ErrNegativeStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := catalog.NewProduct(tc.product, decimal.NewFromInt(tc.price), tc.stock)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestProductHasStockFor(t *testing.T) {
	p, err := catalog.NewProduct("Soda", decimal.NewFromInt(50), 3)
	require.NoError(t, err)

	assert.True(t, p.HasStockFor(3))
	assert.True(t, p.HasStockFor(1))
	assert.False(t, p.HasStockFor(4))
	assert.False(t, p.HasStockFor(0))
	assert.False(t, p.HasStockFor(-1))
}

func TestNewService(t *testing.T) {
	t.Run("valid service", func(t *testing.T) {
		s, err := catalog.NewService("Haircut", decimal.NewFromInt(400))
		require.NoError(t, err)
		assert.Equal(t, "Haircut", s.Name())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := catalog.NewService("", decimal.NewFromInt(400))
		assert.ErrorIs(t, err, catalog.ErrEmptyName)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := catalog.NewService("Haircut", decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, catalog.ErrNegativePrice)
	})
}
