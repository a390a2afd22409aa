package capgains

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"

	"github.com/etnz/capgains/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// txRecord is the JSON form of a Transaction, one per line in a ledger file:
//
//	{"date":"2020-01-01","instrument":"NL0011794037","quantity":1,"amount":-500,"currency":"EUR","order":"a1b2"}
type txRecord struct {
	Date       date.Date       `json:"date"`
	Instrument string          `json:"instrument"`
	Quantity   int64           `json:"quantity"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	OrderID    string          `json:"order"`
}

// EncodeTransaction writes a single transaction as a line of JSON.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	var jw fields
	jw.Set("date", tx.Date)
	jw.Set("instrument", tx.Instrument)
	jw.Set("quantity", tx.Quantity)
	jw.Set("amount", tx.Proceeds.Normalize().Amount())
	jw.SetString("currency", tx.Proceeds.Currency())
	jw.SetString("order", tx.OrderID)
	b, err := jw.MarshalJSON()
	if err != nil {
		return fmt.Errorf("could not encode transaction %q: %w", tx.OrderID, err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// EncodeLedger writes all the transactions of the source, one per line.
func EncodeLedger(w io.Writer, txs iter.Seq2[Transaction, error]) error {
	bw := bufio.NewWriter(w)
	for tx, err := range txs {
		if err != nil {
			return err
		}
		if err := EncodeTransaction(bw, tx); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// DecodeLedger streams the transactions of a JSONL ledger. Empty lines are skipped.
// Each transaction is validated, the first invalid line stops the sequence.
func DecodeLedger(r io.Reader) iter.Seq2[Transaction, error] {
	return func(yield func(Transaction, error) bool) {
		scanner := bufio.NewScanner(r)
		lineNum := 0
		for scanner.Scan() {
			lineNum++
			lineBytes := scanner.Bytes()
			if len(lineBytes) == 0 {
				continue // Skip empty lines
			}

			var rec txRecord
			if err := json.Unmarshal(lineBytes, &rec); err != nil {
				yield(Transaction{}, fmt.Errorf("line %d: could not decode %q: %w", lineNum, string(lineBytes), err))
				return
			}
			if rec.Date.IsZero() {
				yield(Transaction{}, fmt.Errorf("line %d: missing date", lineNum))
				return
			}
			tx, err := NewTransaction(rec.Date, rec.Instrument, rec.Quantity, M(rec.Amount, rec.Currency), rec.OrderID)
			if err != nil {
				yield(Transaction{}, fmt.Errorf("line %d: %w", lineNum, err))
				return
			}
			if !yield(tx, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Transaction{}, err)
		}
	}
}
