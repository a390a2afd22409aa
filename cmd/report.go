package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/capgains"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	sourceFlags
	json    bool
	query   string
	verbose bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "capital gains report of a tax year" }
func (*reportCmd) Usage() string {
	return `cgt report [-f <file>] [-y <year>] [-carry <years>] [-json] [-q <jsonpath>] [-v]

  Computes the capital gains realized during a tax year, and the profit adjusted
  by the losses carried over from the previous years.

Usage Examples:
# Report on 2024, carrying the losses of the 5 previous years.
$ cgt report -f Transactions.csv -y 2024 -carry 5

# Print only the adjusted profit.
$ cgt report -f Transactions.csv -y 2024 -q '$.adjustedProfit'
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.sourceFlags.SetFlags(f)
	f.BoolVar(&c.json, "json", false, "Print the report as JSON.")
	f.StringVar(&c.query, "q", "", "Print only the value at this JSONPath in the JSON report, e.g. '$.adjustedProfit'.")
	f.BoolVar(&c.verbose, "v", false, "Log each realized sale.")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := c.resolve(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	src, closer, err := openSource(c.input, cfg.Currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer.Close()

	p := capgains.WithCarryLosses(src, c.carry)
	if c.verbose {
		p.Trace(func(tx capgains.Transaction, realized capgains.Money) {
			log.Println(renderer.Sale(tx, realized))
		})
	}
	r, err := p.Report(c.year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing the report for %d: %v\n", c.year, err)
		return subcommands.ExitFailure
	}

	switch {
	case c.query != "":
		out, err := queryReport(r, c.query)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Println(out)
	case c.json:
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error encoding the report:", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(b))
	default:
		printMarkdown(renderer.ReportMarkdown(r))
	}
	return subcommands.ExitSuccess
}

// queryReport evaluates a JSONPath on the JSON form of the report. Strings and
// numbers are returned as is, other values as JSON.
func queryReport(r *capgains.Report, path string) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("could not encode the report: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return "", fmt.Errorf("could not decode the report: %w", err)
	}

	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return "", fmt.Errorf("invalid query %q: %w", path, err)
	}
	switch v := v.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("could not encode the result of %q: %w", path, err)
		}
		return string(b), nil
	}
}
