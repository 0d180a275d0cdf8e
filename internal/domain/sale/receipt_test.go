//go:build unit

package sale_test

import (
	"testing"

	"salepoint/internal/domain/sale"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReceiptNumber(t *testing.T) {
	cases := []struct {
		name    string
		counter int64
		want    string
		errIs   error
	}{
		{"first receipt", 1, "RCP000001", nil},
		{"mid range", 42, "RCP000042", nil},
		{"full width", 999999, "RCP999999", nil},
		{"beyond six digits keeps width", 1000000, "RCP1000000", nil},
		{"zero rejected", 0, "", sale.ErrInvalidReceiptCounter},
		{"negative rejected", -3, "", sale.ErrInvalidReceiptCounter},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := sale.FormatReceiptNumber(tc.counter)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseReceiptNumber(t *testing.T) {
	t.Run("round trips format", func(t *testing.T) {
		for _, counter := range []int64{1, 999999, 1000000} {
			formatted, err := sale.FormatReceiptNumber(counter)
			require.NoError(t, err)

			parsed, err := sale.ParseReceiptNumber(formatted)
			require.NoError(t, err)
			assert.Equal(t, counter, parsed)
		}
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, s := range []string{"", "RCP", "RCP12", "rcp000001", "INV000001", "RCP00000a"} {
			_, err := sale.ParseReceiptNumber(s)
			assert.ErrorIs(t, err, sale.ErrMalformedReceipt, "input %q", s)
		}
	})
}
