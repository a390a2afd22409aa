package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the interactive session between the user and the tax advisor.
type Agent struct {
	w       io.Writer
	r       *bufio.Reader
	Advisor *Expert
}

// New creates a new Agent reading questions from r and writing the answers
// to w (e.g. os.Stdin and os.Stdout).
func New(w io.Writer, r io.Reader, advisor *Expert) *Agent {
	return &Agent{
		w:       w,
		r:       bufio.NewReader(r),
		Advisor: advisor,
	}
}

const prompt = "explain> "

// Run starts the interactive REPL session. The prompts are asked first, as if
// typed by the user.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Advisor.chat == nil {
		if err := a.Advisor.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Ask anything about your capital gains. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		input, err := a.next(&prompts)
		if err == io.EOF {
			return nil // Ctrl+D
		}
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "bye" {
			return nil
		}

		content, err := a.Advisor.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		for _, p := range content.Parts {
			if p.Text != "" {
				fmt.Fprintln(a.w, p.Text)
			}
		}
	}
}

// next pops the next pending prompt, or reads a line from the user.
func (a *Agent) next(prompts *[]string) (string, error) {
	if len(*prompts) > 0 {
		input := (*prompts)[0]
		*prompts = (*prompts)[1:]
		fmt.Fprintln(a.w, input)
		return input, nil
	}
	return a.r.ReadString('\n')
}
