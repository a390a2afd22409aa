package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/capgains/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// explainCmd is the subcommand for the AI assistant.
type explainCmd struct {
	sourceFlags
}

func (*explainCmd) Name() string { return "explain" }
func (*explainCmd) Synopsis() string {
	return "start an interactive session with the AI tax advisor"
}
func (*explainCmd) Usage() string {
	return `cgt explain [-f <file>] [-y <year>] [-carry <years>] [<question>...]

  Start an interactive session with an AI tax advisor that answers questions
  about the capital gains computed from the transactions file.
  The Gemini API credentials are read from the environment (GOOGLE_API_KEY).
`
}

func (c *explainCmd) SetFlags(f *flag.FlagSet) { c.sourceFlags.SetFlags(f) }

func (c *explainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := c.resolve(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, fmt.Sprintf("About the tax year %d: %s", c.year, strings.Join(f.Args(), " ")))
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	advisor := agent.NewAdvisor(reports(c.input, cfg.Currency), c.carry)
	a := agent.New(os.Stdout, os.Stdin, advisor)
	if err := a.Run(ctx, client, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Advisor failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
