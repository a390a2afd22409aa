package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/docs"
	"github.com/etnz/capgains/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// ReportFunc computes the capital gains report of a year, carrying the losses
// of up to carryYears previous years.
type ReportFunc func(year, carryYears int) (*capgains.Report, error)

// NewAdvisor creates the tax advisor expert. It computes reports with reports,
// and carries losses from carryYears previous years unless asked otherwise.
func NewAdvisor(reports ReportFunc, carryYears int) *Expert {
	lib := []Function{NewReportFunc(reports, carryYears), Topic}
	return &Expert{
		Name:      "Advisor",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a tax advisor helping the user to understand the capital gains
				realized on their broker account.

				Never compute figures yourself: use the Report tool to get the realized
				gains and losses per year, the profit of a year and the profit adjusted by
				the losses carried over from previous years.
				Use the Topic tool to learn how the figures are computed before explaining
				them, the available topics are: ` + strings.Join(must(docs.GetAllTopics()), ", ") + `.

				Answer in a concise markdown.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// NewReportFunc returns the function tool computing capital gains reports.
func NewReportFunc(reports ReportFunc, carryYears int) *Func {
	const name = "Report"
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: `Report computes the capital gains report of a tax year from the user's transactions.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"year": {
						Type:        genai.TypeInteger,
						Description: "The tax year to report on.",
					},
					"carryYears": {
						Type:        genai.TypeInteger,
						Description: fmt.Sprintf("The number of previous years whose losses can be carried over. Default is %d.", carryYears),
					},
				},
				Required: []string{"year"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeObject,
				Description: "The report as JSON, and as a markdown document.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			year, ok, err := intArg(args, "year")
			if err == nil && !ok {
				err = fmt.Errorf("argument 'year' is required")
			}
			if err != nil {
				return errorResponse(id, name, err)
			}
			carry, ok, err := intArg(args, "carryYears")
			if err != nil {
				return errorResponse(id, name, err)
			}
			if !ok {
				carry = carryYears
			}
			r, err := reports(year, carry)
			if err != nil {
				return errorResponse(id, name, fmt.Errorf("could not compute the report for %d: %w", year, err))
			}
			b, err := json.Marshal(r)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, map[string]any{
				"json":     string(b),
				"markdown": renderer.ReportMarkdown(r),
			})
		},
	}
}

// Topic reads the documentation.
var Topic = &Func{
	Decl: &genai.FunctionDeclaration{
		Name:        "Topic",
		Description: `Topic returns the documentation about a topic, in markdown.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"topic": {
					Type:        genai.TypeString,
					Description: "The topic name.",
				},
			},
			Required: []string{"topic"},
		},
		Response: &genai.Schema{Type: genai.TypeString},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		topic, ok := args["topic"].(string)
		if !ok {
			return errorResponse(id, "Topic", fmt.Errorf("argument 'topic' is not a string as expected but %T", args["topic"]))
		}
		content, err := docs.GetTopic(topic)
		if err != nil {
			return errorResponse(id, "Topic", err)
		}
		return outputResponse(id, "Topic", content)
	},
}

// intArg reads an optional integer argument. Models send numbers as float64.
func intArg(args map[string]any, name string) (int, bool, error) {
	v, ok := args[name]
	if !ok {
		return 0, false, nil
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, false, fmt.Errorf("argument %q must be an integer got %v", name, n)
		}
		return int(n), true, nil
	case int:
		return n, true, nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false, fmt.Errorf("argument %q must be an integer got %q", name, n)
		}
		return i, true, nil
	default:
		return 0, false, fmt.Errorf("argument %q is not a number as expected but %T", name, v)
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
