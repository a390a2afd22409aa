package capgains

import "github.com/etnz/capgains/date"

// TransactionType is either a Buy or a Sell.
type TransactionType int

const (
	Buy TransactionType = iota
	Sell
)

func (t TransactionType) String() string {
	switch t {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// Transaction is a validated trade of an instrument.
//
// A purchase has a positive Quantity and non-positive Proceeds (the cost is
// paid), a sale has a negative Quantity and non-negative Proceeds.
type Transaction struct {
	Date       date.Date
	Instrument string // ISIN
	Quantity   int64
	Proceeds   Money
	OrderID    string
}

// NewTransaction creates a transaction after checking that quantity and proceeds signs match.
func NewTransaction(on date.Date, instrument string, quantity int64, proceeds Money, orderID string) (Transaction, error) {
	if quantity < 0 && proceeds.IsNegative() {
		return Transaction{}, &MalformedTransactionError{OrderID: orderID, Reason: SellWithNegativeProceeds}
	}
	if quantity > 0 && proceeds.IsPositive() {
		return Transaction{}, &MalformedTransactionError{OrderID: orderID, Reason: BuyWithPositiveProceeds}
	}
	return Transaction{
		Date:       on,
		Instrument: instrument,
		Quantity:   quantity,
		Proceeds:   proceeds,
		OrderID:    orderID,
	}, nil
}

// MustTransaction is like NewTransaction but panics on error.
func MustTransaction(on date.Date, instrument string, quantity int64, proceeds Money, orderID string) Transaction {
	tx, err := NewTransaction(on, instrument, quantity, proceeds, orderID)
	if err != nil {
		panic(err.Error())
	}
	return tx
}

// Type derives the transaction type from the sign of its proceeds.
func (t Transaction) Type() TransactionType {
	if t.Proceeds.IsNegative() {
		return Buy
	}
	return Sell
}
