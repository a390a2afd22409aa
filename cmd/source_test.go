package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/capgains"
)

const degiroCSV = `Date,Time,Product,ISIN,Reference,Venue,Quantity,Price,,Local value,,Value,,Exchange rate,Transaction and/or third,,Total,,Order ID
03-02-2021,10:15,AXA,FR0000120628,EPA,XPAR,-1,400.00,EUR,400.00,EUR,400.00,EUR,,-2.00,EUR,398.00,EUR,o-2
02-01-2020,09:00,AXA,FR0000120628,EPA,XPAR,1,500.00,EUR,-500.00,EUR,-500.00,EUR,,-2.00,EUR,-502.00,EUR,o-1
`

const ledgerJSONL = `{"date":"2020-01-02","instrument":"FR0000120628","quantity":1,"amount":-500,"order":"o-1"}
{"date":"2021-02-03","instrument":"FR0000120628","quantity":-1,"amount":400,"order":"o-2"}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpenSource(t *testing.T) {
	testCases := []struct {
		name     string
		file     string
		content  string
		currency string
		want     capgains.Money
	}{
		{"degiro", "Transactions.csv", degiroCSV, "", capgains.M(-100, "EUR")},
		{"ledger", "ledger.jsonl", ledgerJSONL, "", capgains.M(-100, "")},
		{"ledger with currency", "ledger.jsonl", ledgerJSONL, "usd", capgains.M(-100, "USD")},
		{"upper case extension", "EXPORT.CSV", degiroCSV, "USD", capgains.M(-100, "EUR")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := reports(writeFile(t, tc.file, tc.content), tc.currency)(2021, 0)
			if err != nil {
				t.Fatalf("report error = %v", err)
			}
			got, err := r.AdjustedProfit()
			if err != nil {
				t.Fatalf("AdjustedProfit() error = %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("AdjustedProfit() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestOpenSource_Errors(t *testing.T) {
	if _, _, err := openSource(writeFile(t, "ledger.txt", ledgerJSONL), ""); err == nil {
		t.Errorf("openSource() succeeded on an unknown extension, want error")
	}
	if _, _, err := openSource(filepath.Join(t.TempDir(), "missing.csv"), ""); err == nil {
		t.Errorf("openSource() succeeded on a missing file, want error")
	}
}
