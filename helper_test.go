package capgains

import (
	"github.com/etnz/capgains/date"
	"github.com/shopspring/decimal"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// dec is a helper for test to create an exact amount from its text.
func dec(s string) Money { return M(decimal.RequireFromString(s), "") }

// buy returns a purchase of quantity units of instrument for a total cost.
func buy(on string, instrument string, quantity int64, cost float64) Transaction {
	return MustTransaction(date.MustParse(on), instrument, quantity, NO(-cost), "buy-"+instrument+"-"+on)
}

// sell returns a sale of quantity units of instrument for total proceeds.
func sell(on string, instrument string, quantity int64, proceeds float64) Transaction {
	return MustTransaction(date.MustParse(on), instrument, -quantity, NO(proceeds), "sell-"+instrument+"-"+on)
}
