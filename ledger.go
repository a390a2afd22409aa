package capgains

import "fmt"

// Position is the running cost basis of one instrument.
type Position struct {
	Cost     Money // cumulative cost
	Average  Money // average unit cost
	Quantity int64
}

// Ledger tracks the average cost basis of every instrument bought so far.
//
// Its zero value is ready to use. A Ledger is not safe for concurrent use.
type Ledger struct {
	positions map[string]*Position
}

// Position returns the current position for instrument, and false if the
// instrument was never bought.
func (l *Ledger) Position(instrument string) (Position, bool) {
	p, ok := l.positions[instrument]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// Buy adds a purchase to the instrument's position and recomputes its average cost.
func (l *Ledger) Buy(tx Transaction) error {
	if l.positions == nil {
		l.positions = make(map[string]*Position)
	}
	p, ok := l.positions[tx.Instrument]
	if !ok {
		cur := tx.Proceeds.Currency()
		p = &Position{Cost: Zero(cur), Average: Zero(cur)}
		l.positions[tx.Instrument] = p
	}

	cost, err := p.Cost.Add(tx.Proceeds.Neg())
	if err != nil {
		return fmt.Errorf("buying %q in order %q: %w", tx.Instrument, tx.OrderID, err)
	}
	quantity := p.Quantity + tx.Quantity
	average, err := cost.Div(quantity)
	if err != nil {
		return fmt.Errorf("buying %q in order %q: %w", tx.Instrument, tx.OrderID, err)
	}
	p.Cost, p.Quantity, p.Average = cost, quantity, average
	return nil
}

// Sell removes a sale from the instrument's position and returns the realized
// gain (positive) or loss (negative): the proceeds minus the average cost of the
// units sold.
//
// The cumulative cost is reduced by the sale proceeds, and the average cost is
// left unchanged until the next purchase.
func (l *Ledger) Sell(tx Transaction) (Money, error) {
	if tx.Quantity == 0 {
		return Money{}, &DegenerateTransactionError{OrderID: tx.OrderID}
	}
	p, ok := l.positions[tx.Instrument]
	if !ok {
		return Money{}, &SellWithoutPriorPositionError{Instrument: tx.Instrument, OrderID: tx.OrderID}
	}

	matched := p.Average.Mul(tx.Quantity).Abs()
	realized, err := tx.Proceeds.Sub(matched)
	if err != nil {
		return Money{}, fmt.Errorf("selling %q in order %q: %w", tx.Instrument, tx.OrderID, err)
	}
	cost, err := p.Cost.Sub(tx.Proceeds)
	if err != nil {
		return Money{}, fmt.Errorf("selling %q in order %q: %w", tx.Instrument, tx.OrderID, err)
	}
	p.Cost = cost
	p.Quantity += tx.Quantity
	return realized, nil
}
