package capgains

import (
	"fmt"
	"iter"
)

// Portfolio computes capital gains reports from a chronological source of transactions.
type Portfolio struct {
	source     iter.Seq2[Transaction, error]
	carryYears int
	trace      func(tx Transaction, realized Money)
}

// New creates a Portfolio that does not carry losses.
func New(source iter.Seq2[Transaction, error]) *Portfolio {
	return &Portfolio{source: source}
}

// WithCarryLosses creates a Portfolio carrying the losses of up to carryYears previous years.
func WithCarryLosses(source iter.Seq2[Transaction, error], carryYears int) *Portfolio {
	return &Portfolio{source: source, carryYears: carryYears}
}

// Trace sets a function called for each realized sale.
func (p *Portfolio) Trace(f func(tx Transaction, realized Money)) *Portfolio {
	p.trace = f
	return p
}

// Transactions adapts a slice of transactions into a source.
func Transactions(txs ...Transaction) iter.Seq2[Transaction, error] {
	return func(yield func(Transaction, error) bool) {
		for _, tx := range txs {
			if !yield(tx, nil) {
				return
			}
		}
	}
}

// Report consumes the source up to the end of year and returns the report for that year.
//
// The source must deliver transactions in non-decreasing date order. It is read
// once, and no transaction dated after year is read past the first one.
func (p *Portfolio) Report(year int) (*Report, error) {
	next, stop := iter.Pull2(p.source)
	defer stop()
	src := &lookahead{next: next}

	var ledger Ledger
	var acc Accumulator
	for {
		tx, ok, err := src.pop()
		if err != nil {
			return nil, &IngestionError{Err: err}
		}
		if !ok || tx.Date.Year() > year {
			break
		}

		nt, more, err := src.peek()
		if err != nil {
			return nil, &IngestionError{Err: err}
		}
		if more && nt.Date.Before(tx.Date) {
			return nil, &OutOfOrderInputError{OrderID: tx.OrderID, Date: tx.Date, Next: nt.Date}
		}

		if err := p.apply(&ledger, &acc, tx); err != nil {
			return nil, err
		}

		if more && nt.Date.Year() > year {
			break
		}
	}
	return acc.Report(year, p.carryYears), nil
}

// apply updates the ledger with tx, and records the realized result of sales.
func (p *Portfolio) apply(ledger *Ledger, acc *Accumulator, tx Transaction) error {
	if tx.Type() == Buy {
		return ledger.Buy(tx)
	}

	realized, err := ledger.Sell(tx)
	if err != nil {
		return err
	}
	if p.trace != nil {
		p.trace(tx, realized)
	}
	if err := acc.Record(tx.Date.Year(), realized); err != nil {
		return fmt.Errorf("order %q: %w", tx.OrderID, err)
	}
	return nil
}

// lookahead gives a one-transaction lookahead over a pulled source.
type lookahead struct {
	next    func() (Transaction, error, bool)
	pending bool
	tx      Transaction
	err     error
	ok      bool
}

func (l *lookahead) peek() (Transaction, bool, error) {
	if !l.pending {
		l.tx, l.err, l.ok = l.next()
		l.pending = true
	}
	return l.tx, l.ok, l.err
}

func (l *lookahead) pop() (Transaction, bool, error) {
	tx, ok, err := l.peek()
	l.pending = false
	return tx, ok, err
}
