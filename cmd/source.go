package cmd

import (
	"flag"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/date"
)

// sourceFlags are the flags shared by the commands reading transactions.
type sourceFlags struct {
	input string
	year  int
	carry int
}

func (s *sourceFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&s.input, "f", "", "Transactions file: a DEGIRO export (.csv) or a ledger (.jsonl). Defaults to the config input.")
	f.IntVar(&s.year, "y", date.Today().Year()-1, "Tax year to report on.")
	f.IntVar(&s.carry, "carry", -1, "Number of previous years whose losses are carried over. Defaults to the config carry_years, or 0.")
}

// resolve completes the flags with the configuration.
func (s *sourceFlags) resolve(cfg *Config) error {
	if s.input == "" {
		s.input = cfg.Input
	}
	if s.input == "" {
		return fmt.Errorf("no transactions file: use -f or set input in %s", defaultConfigFile)
	}
	if s.carry < 0 {
		s.carry = 0
		if cfg.CarryYears != nil {
			s.carry = *cfg.CarryYears
		}
	}
	return nil
}

// openSource opens a transactions file according to its extension. The
// returned closer must be closed once the transactions are consumed.
func openSource(name, currency string) (iter.Seq2[capgains.Transaction, error], io.Closer, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open transactions file %q: %w", name, err)
	}

	var src iter.Seq2[capgains.Transaction, error]
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".csv":
		st, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("could not stat transactions file %q: %w", name, err)
		}
		src = capgains.DecodeDegiro(f, st.Size())
	case ".jsonl", ".json":
		src = capgains.DecodeLedger(f)
	default:
		f.Close()
		return nil, nil, fmt.Errorf("unsupported transactions file %q: want a .csv or .jsonl extension", name)
	}
	return withCurrency(src, currency), f, nil
}

// withCurrency tags the amounts without currency with cur.
func withCurrency(src iter.Seq2[capgains.Transaction, error], cur string) iter.Seq2[capgains.Transaction, error] {
	if cur == "" {
		return src
	}
	return func(yield func(capgains.Transaction, error) bool) {
		for tx, err := range src {
			if err == nil && tx.Proceeds.Currency() == "" {
				tx.Proceeds = capgains.M(tx.Proceeds.Amount(), cur)
			}
			if !yield(tx, err) {
				return
			}
		}
	}
}

// reports returns a function computing reports from the transactions file.
// The file is read again for each report.
func reports(input, currency string) func(year, carryYears int) (*capgains.Report, error) {
	return func(year, carryYears int) (*capgains.Report, error) {
		src, closer, err := openSource(input, currency)
		if err != nil {
			return nil, err
		}
		defer closer.Close()
		return capgains.WithCarryLosses(src, carryYears).Report(year)
	}
}
