package sale

import (
	"fmt"
	"regexp"
	"strconv"

	"salepoint/internal/pkg/errs"
)

var (
	ErrInvalidReceiptCounter = errs.New("receipt counter must be positive")
	ErrMalformedReceipt      = errs.New("malformed receipt number")
)

var receiptPattern = regexp.MustCompile(`^RCP(\d{6,})$`)

// FormatReceiptNumber renders a counter value as a display receipt
// number, e.g. 42 -> "RCP000042". Counters above 999999 keep their
// full width rather than wrapping.
func FormatReceiptNumber(counter int64) (string, error) {
	if counter <= 0 {
		return "", ErrInvalidReceiptCounter
	}
	return fmt.Sprintf("RCP%06d", counter), nil
}

// ParseReceiptNumber recovers the counter value from a receipt
// number string.
func ParseReceiptNumber(receipt string) (int64, error) {
	m := receiptPattern.FindStringSubmatch(receipt)
	if m == nil {
		return 0, ErrMalformedReceipt
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrMalformedReceipt
	}
	return n, nil
}
