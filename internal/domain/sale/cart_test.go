//go:build unit

package sale_test

import (
	"testing"

	"salepoint/internal/domain/sale"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCartTotals(t *testing.T) {
	t.Run("two products and flat discount", func(t *testing.T) {
		c := sale.NewCart()
		a, b := uuid.New(), uuid.New()

		require.NoError(t, c.AddProduct(a, "Item A", dec("500"), 2))
		require.NoError(t, c.AddProduct(b, "Item B", dec("1500"), 1))

		d, err := sale.NewFlatDiscount(dec("200"))
		require.NoError(t, err)
		require.NoError(t, c.ApplyDiscount(d))

		subtotal, discountAmount, total, err := c.Totals()
		require.NoError(t, err)
		assert.True(t, dec("2500").Equal(subtotal), "subtotal = %s", subtotal)
		assert.True(t, dec("200").Equal(discountAmount), "discount = %s", discountAmount)
		assert.True(t, dec("2300").Equal(total), "total = %s", total)
	})

	t.Run("percentage discount rounds half up", func(t *testing.T) {
		c := sale.NewCart()
		require.NoError(t, c.AddProduct(uuid.New(), "Item", dec("333"), 1))

		d, err := sale.NewPercentageDiscount(dec("10"))
		require.NoError(t, err)
		require.NoError(t, c.ApplyDiscount(d))

		_, discountAmount, total, err := c.Totals()
		require.NoError(t, err)
		assert.True(t, dec("33.30").Equal(discountAmount), "discount = %s", discountAmount)
		assert.True(t, dec("299.70").Equal(total), "total = %s", total)
	})

	t.Run("hundred percent discount yields zero total", func(t *testing.T) {
		c := sale.NewCart()
		require.NoError(t, c.AddProduct(uuid.New(), "Item", dec("750"), 1))

		d, err := sale.NewPercentageDiscount(dec("100"))
		require.NoError(t, err)
		require.NoError(t, c.ApplyDiscount(d))

		_, _, total, err := c.Totals()
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("empty cart has no totals", func(t *testing.T) {
		c := sale.NewCart()
		_, _, _, err := c.Totals()
		assert.ErrorIs(t, err, sale.ErrEmptyCart)
	})

	t.Run("no discount means zero discount amount", func(t *testing.T) {
		c := sale.NewCart()
		require.NoError(t, c.AddProduct(uuid.New(), "Item", dec("100"), 3))

		subtotal, discountAmount, total, err := c.Totals()
		require.NoError(t, err)
		assert.True(t, dec("300").Equal(subtotal))
		assert.True(t, discountAmount.IsZero())
		assert.True(t, dec("300").Equal(total))
	})
}

// A cart is a plain value; throwing one away and rebuilding the same
// lines must yield the same totals as the first build.
func TestCartRebuildIdempotence(t *testing.T) {
	a, b, svc := uuid.New(), uuid.New(), uuid.New()

	build := func(t *testing.T) *sale.Cart {
		c := sale.NewCart()
		require.NoError(t, c.AddProduct(a, "Item A", dec("500"), 2))
		require.NoError(t, c.AddProduct(b, "Item B", dec("1500"), 1))
		require.NoError(t, c.AddService(svc, "Haircut", dec("400")))

		d, err := sale.NewPercentageDiscount(dec("10"))
		require.NoError(t, err)
		require.NoError(t, c.ApplyDiscount(d))
		return c
	}

	subtotal, discountAmount, total, err := build(t).Totals()
	require.NoError(t, err)

	// Discard and start over with identical lines.
	rebuilt := build(t)

	subtotal2, discountAmount2, total2, err := rebuilt.Totals()
	require.NoError(t, err)
	assert.True(t, subtotal.Equal(subtotal2), "subtotal %s vs %s", subtotal, subtotal2)
	assert.True(t, discountAmount.Equal(discountAmount2), "discount %s vs %s", discountAmount, discountAmount2)
	assert.True(t, total.Equal(total2), "total %s vs %s", total, total2)

	assert.True(t, dec("2900").Equal(subtotal2))
	assert.True(t, dec("290").Equal(discountAmount2))
	assert.True(t, dec("2610").Equal(total2))
}

func TestCartLineMerging(t *testing.T) {
	t.Run("same product merges into one line", func(t *testing.T) {
		c := sale.NewCart()
		id := uuid.New()

		require.NoError(t, c.AddProduct(id, "Soda", dec("50"), 1))
		require.NoError(t, c.AddProduct(id, "Soda", dec("50"), 2))

		lines := c.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 3, lines[0].Quantity())
		assert.True(t, dec("150").Equal(lines[0].LineTotal()))
	})

	t.Run("different products keep separate lines", func(t *testing.T) {
		c := sale.NewCart()
		require.NoError(t, c.AddProduct(uuid.New(), "Soda", dec("50"), 1))
		require.NoError(t, c.AddProduct(uuid.New(), "Water", dec("30"), 1))

		assert.Len(t, c.Lines(), 2)
	})

	t.Run("service cannot be added twice", func(t *testing.T) {
		c := sale.NewCart()
		id := uuid.New()

		require.NoError(t, c.AddService(id, "Haircut", dec("400")))
		err := c.AddService(id, "Haircut", dec("400"))
		assert.ErrorIs(t, err, sale.ErrServiceAlreadyInCart)
		assert.Len(t, c.Lines(), 1)
	})

	t.Run("product and service with same id stay distinct", func(t *testing.T) {
		c := sale.NewCart()
		id := uuid.New()

		require.NoError(t, c.AddProduct(id, "Shampoo", dec("250"), 1))
		require.NoError(t, c.AddService(id, "Wash", dec("250")))

		assert.Len(t, c.Lines(), 2)
	})

	t.Run("rejects zero and negative quantity", func(t *testing.T) {
		c := sale.NewCart()
		assert.ErrorIs(t, c.AddProduct(uuid.New(), "Item", dec("10"), 0), sale.ErrInvalidQuantity)
		assert.ErrorIs(t, c.AddProduct(uuid.New(), "Item", dec("10"), -1), sale.ErrInvalidQuantity)
	})

	t.Run("rejects negative unit price", func(t *testing.T) {
		c := sale.NewCart()
		assert.ErrorIs(t, c.AddProduct(uuid.New(), "Item", dec("-1"), 1), sale.ErrNegativeUnitPrice)
		assert.ErrorIs(t, c.AddService(uuid.New(), "Svc", dec("-1")), sale.ErrNegativeUnitPrice)
	})
}

func TestCartRemoveLine(t *testing.T) {
	c := sale.NewCart()
	require.NoError(t, c.AddProduct(uuid.New(), "A", dec("10"), 1))
	require.NoError(t, c.AddProduct(uuid.New(), "B", dec("20"), 1))

	require.NoError(t, c.RemoveLine(0))
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "B", lines[0].Name())

	assert.ErrorIs(t, c.RemoveLine(5), sale.ErrLineIndexOutOfRange)
	assert.ErrorIs(t, c.RemoveLine(-1), sale.ErrLineIndexOutOfRange)
}

func TestCartDiscountBounds(t *testing.T) {
	t.Run("flat discount above subtotal rejected", func(t *testing.T) {
		c := sale.NewCart()
		require.NoError(t, c.AddProduct(uuid.New(), "Item", dec("100"), 1))

		d, err := sale.NewFlatDiscount(dec("150"))
		require.NoError(t, err)
		assert.ErrorIs(t, c.ApplyDiscount(d), sale.ErrDiscountExceedsSubtotal)

		_, got := c.Discount()
		assert.False(t, got)
	})

	t.Run("flat discount equal to subtotal allowed", func(t *testing.T) {
		c := sale.NewCart()
		require.NoError(t, c.AddProduct(uuid.New(), "Item", dec("100"), 1))

		d, err := sale.NewFlatDiscount(dec("100"))
		require.NoError(t, err)
		require.NoError(t, c.ApplyDiscount(d))

		_, _, total, err := c.Totals()
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})

	t.Run("applying a discount replaces the previous one", func(t *testing.T) {
		c := sale.NewCart()
		require.NoError(t, c.AddProduct(uuid.New(), "Item", dec("1000"), 1))

		first, _ := sale.NewFlatDiscount(dec("100"))
		second, _ := sale.NewPercentageDiscount(dec("50"))
		require.NoError(t, c.ApplyDiscount(first))
		require.NoError(t, c.ApplyDiscount(second))

		_, discountAmount, _, err := c.Totals()
		require.NoError(t, err)
		assert.True(t, dec("500").Equal(discountAmount))
	})

	t.Run("clear discount restores full total", func(t *testing.T) {
		c := sale.NewCart()
		require.NoError(t, c.AddProduct(uuid.New(), "Item", dec("1000"), 1))

		d, _ := sale.NewFlatDiscount(dec("100"))
		require.NoError(t, c.ApplyDiscount(d))
		c.ClearDiscount()

		_, discountAmount, total, err := c.Totals()
		require.NoError(t, err)
		assert.True(t, discountAmount.IsZero())
		assert.True(t, dec("1000").Equal(total))
	})
}

func TestDiscountValidation(t *testing.T) {
	cases := []struct {
		name  string
		kind  sale.DiscountKind
		value string
		errIs error
	}{
		{"valid percentage", sale.DiscountPercentage, "15", nil},
		{"valid flat", sale.DiscountFlat, "200", nil},
		{"zero percentage", sale.DiscountPercentage, "0", sale.ErrNonPositiveDiscount},
		{"negative percentage", sale.DiscountPercentage, "-5", sale.ErrNonPositiveDiscount},
		{"percentage above 100", sale.DiscountPercentage, "100.01", sale.ErrPercentageOutOfRange},
		{"zero flat", sale.DiscountFlat, "0", sale.ErrNonPositiveDiscount},
		{"unknown kind", sale.DiscountKind("bogus"), "10", sale.ErrInvalidDiscountKind},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sale.NewDiscount(tc.kind, dec(tc.value))
			if tc.errIs == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.errIs)
			}
		})
	}
}

func TestProductQuantities(t *testing.T) {
	c := sale.NewCart()
	a, b := uuid.New(), uuid.New()

	require.NoError(t, c.AddProduct(a, "A", dec("10"), 2))
	require.NoError(t, c.AddProduct(b, "B", dec("20"), 1))
	require.NoError(t, c.AddService(uuid.New(), "Svc", dec("30")))

	got := c.ProductQuantities()
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[a])
	assert.Equal(t, 1, got[b])
}
