package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
)

type importCmd struct {
	input  string
	output string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "converts a DEGIRO export into a ledger" }
func (*importCmd) Usage() string {
	return `cgt import -f <Transactions.csv> [-o <ledger.jsonl>]

  Converts a DEGIRO transactions export into a ledger, one JSON transaction per
  line, oldest first. The ledger is printed unless -o is set.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.input, "f", "", "DEGIRO transactions export (.csv). Defaults to the config input.")
	f.StringVar(&c.output, "o", "", "Ledger file to write (.jsonl). Defaults to the standard output.")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if c.input == "" {
		c.input = cfg.Input
	}
	if c.input == "" {
		fmt.Fprintln(os.Stderr, "Error: missing -f flag")
		return subcommands.ExitUsageError
	}

	src, closer, err := openSource(c.input, cfg.Currency)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	defer closer.Close()

	var w io.Writer = os.Stdout
	if c.output != "" {
		out, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating ledger file %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		w = out
	}

	if err := capgains.EncodeLedger(w, src); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", c.input, err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		fmt.Fprintf(os.Stderr, "Successfully imported %s into %s\n", c.input, c.output)
	}
	return subcommands.ExitSuccess
}
