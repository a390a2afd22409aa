package capgains

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"log"
	"strconv"
	"strings"

	"github.com/etnz/capgains/date"
	"github.com/google/uuid"
)

// degiroColumns is the layout of the DEGIRO "Transactions.csv" export. Unnamed
// columns hold the currency of the column before them.
var degiroColumns = []string{
	"Date", "Time", "Product", "ISIN", "Reference", "Venue", "Quantity",
	"Price", "", "Local value", "", "Value", "", "Exchange rate",
	"Transaction and/or third", "", "Total", "", "Order ID",
}

const (
	degiroDate     = 0
	degiroProduct  = 2
	degiroISIN     = 3
	degiroQuantity = 6
	degiroValue    = 11
	degiroCurrency = 12
	degiroOrderID  = 18
)

// degiroNamespace seeds the identifiers of the rows that have no order ID.
var degiroNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://www.degiro.com/transactions"))

// DecodeDegiro reads the transactions of a DEGIRO export in chronological order.
//
// DEGIRO writes the most recent transactions first, so the file is read from
// its end. The first line of the file is the header and is skipped.
func DecodeDegiro(r io.ReaderAt, size int64) iter.Seq2[Transaction, error] {
	return func(yield func(Transaction, error) bool) {
		// hold the line until we know it is not the header.
		var held string
		for line, err := range ReverseLines(r, size) {
			if err != nil {
				yield(Transaction{}, err)
				return
			}
			if held != "" {
				if !yield(decodeDegiroLine(held)) {
					return
				}
			}
			held = line
		}
	}
}

// decodeDegiroLine decodes a single csv record of the DEGIRO export.
func decodeDegiroLine(line string) (Transaction, error) {
	rd := csv.NewReader(strings.NewReader(line))
	rd.FieldsPerRecord = -1
	record, err := rd.Read()
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid degiro record %q: %w", line, err)
	}
	if len(record) < len(degiroColumns) {
		return Transaction{}, fmt.Errorf("invalid degiro record %q: got %d columns want %d", line, len(record), len(degiroColumns))
	}

	on, err := date.Parse(record[degiroDate])
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid degiro record %q: %w", line, err)
	}
	quantity, err := strconv.ParseInt(strings.TrimSpace(record[degiroQuantity]), 10, 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid degiro record %q: invalid quantity: %w", line, err)
	}
	value := record[degiroValue]
	if cur := strings.TrimSpace(record[degiroCurrency]); cur != "" {
		value += " " + cur
	}
	proceeds, err := ParseMoney(value)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid degiro record %q: %w", line, err)
	}

	orderID := strings.TrimSpace(record[degiroOrderID])
	if orderID == "" {
		orderID = uuid.NewSHA1(degiroNamespace, []byte(line)).String()
		log.Printf("warning: %s %q on %s has no order ID, using %s", record[degiroISIN], record[degiroProduct], on, orderID)
	}

	tx, err := NewTransaction(on, strings.TrimSpace(record[degiroISIN]), quantity, proceeds, orderID)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid degiro record on %s: %w", on, err)
	}
	return tx, nil
}
