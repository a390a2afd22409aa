package capgains

import (
	"fmt"

	"github.com/etnz/capgains/date"
)

// CurrencyMismatchError is returned by Money operations mixing two currencies.
type CurrencyMismatchError struct {
	Left, Right string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: %q != %q", e.Left, e.Right)
}

// Reason tells why a transaction is malformed.
type Reason int

const (
	// SellWithNegativeProceeds is a sale (negative quantity) paired with negative proceeds.
	SellWithNegativeProceeds Reason = iota
	// BuyWithPositiveProceeds is a purchase (positive quantity) paired with positive proceeds.
	BuyWithPositiveProceeds
)

func (r Reason) String() string {
	switch r {
	case SellWithNegativeProceeds:
		return "sell with negative proceeds"
	case BuyWithPositiveProceeds:
		return "buy with positive proceeds"
	default:
		return "unknown"
	}
}

// MalformedTransactionError is returned when a transaction quantity and
// proceeds have inconsistent signs.
type MalformedTransactionError struct {
	OrderID string
	Reason  Reason
}

func (e *MalformedTransactionError) Error() string {
	return fmt.Sprintf("malformed transaction %q: %s", e.OrderID, e.Reason)
}

// OutOfOrderInputError is returned when the transaction source does not deliver
// transactions in non-decreasing date order.
type OutOfOrderInputError struct {
	OrderID string    // the transaction followed by an older one
	Date    date.Date // its date
	Next    date.Date // the date of the older transaction that follows it
}

func (e *OutOfOrderInputError) Error() string {
	return fmt.Sprintf("transaction %q on %s is followed by a transaction on %s", e.OrderID, e.Date, e.Next)
}

// SellWithoutPriorPositionError is returned when selling an instrument that was never bought.
type SellWithoutPriorPositionError struct {
	Instrument string
	OrderID    string
}

func (e *SellWithoutPriorPositionError) Error() string {
	return fmt.Sprintf("transaction %q sells %q without prior position", e.OrderID, e.Instrument)
}

// DegenerateTransactionError is returned for a sale of zero units.
type DegenerateTransactionError struct {
	OrderID string
}

func (e *DegenerateTransactionError) Error() string {
	return fmt.Sprintf("transaction %q sells a zero quantity", e.OrderID)
}

// MissingYearDataError is returned when querying a year without any realized sale.
type MissingYearDataError struct {
	Year int
}

func (e *MissingYearDataError) Error() string {
	return fmt.Sprintf("cannot find data for year %d", e.Year)
}

// IngestionError wraps an error coming from the transaction source.
type IngestionError struct {
	Err error
}

func (e *IngestionError) Error() string { return "reading transactions: " + e.Err.Error() }
func (e *IngestionError) Unwrap() error { return e.Err }
