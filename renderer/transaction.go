package renderer

import (
	"fmt"

	"github.com/etnz/capgains"
)

// Transaction renders a transaction to a string.
func Transaction(tx capgains.Transaction) string {
	switch tx.Type() {
	case capgains.Buy:
		return fmt.Sprintf("%s bought %d of %s for %s", tx.Date, tx.Quantity, tx.Instrument, tx.Proceeds.Abs().Display())
	default:
		return fmt.Sprintf("%s sold %d of %s for %s", tx.Date, -tx.Quantity, tx.Instrument, tx.Proceeds.Display())
	}
}

// Sale renders a sale with its realized result.
func Sale(tx capgains.Transaction, realized capgains.Money) string {
	what := "gain"
	if realized.IsNegative() {
		what = "loss"
	}
	return fmt.Sprintf("%s: %s %s (order %s)", Transaction(tx), what, realized.Abs().Display(), tx.OrderID)
}
