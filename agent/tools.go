package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/trailing"
	"github.com/etnz/trailing/docs"
	"github.com/etnz/trailing/renderer"
	"google.golang.org/genai"
)

// Tools returns the functions available to the Analyst on results.
func Tools(results []*trailing.PeriodResult, benchmark string) []Function {
	labels := make([]string, 0, len(results))
	for _, r := range results {
		labels = append(labels, renderer.WindowLabel(r.Window))
	}

	window := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Window",
			Description: "Window returns the statistics and the month by month records of one analysis window.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"window": {
						Type:        genai.TypeString,
						Description: "The window label as it appears in the report.",
						Enum:        labels,
					},
				},
				Required: []string{"window"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report of the window.",
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			label, err := stringArg(args, "window")
			if err != nil {
				return "", err
			}
			for _, r := range results {
				if renderer.WindowLabel(r.Window) == label {
					return renderer.ReportMarkdown([]*trailing.PeriodResult{r}, renderer.ReportOptions{
						Title:     label + " window",
						Benchmark: benchmark,
						Monthly:   true,
					}), nil
				}
			}
			return "", fmt.Errorf("unknown window %q, available windows are %s", label, strings.Join(labels, ", "))
		},
	}

	methodology := &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Documentation",
			Description: "Documentation returns a documentation topic, like the methodology used to compute the statistics.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {
						Type:        genai.TypeString,
						Description: "The documentation topic.",
						Enum:        must(docs.GetAllTopics()),
					},
				},
				Required: []string{"topic"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown documentation.",
			},
		},
		Func: func(ctx context.Context, args map[string]any) (string, error) {
			topic, err := stringArg(args, "topic")
			if err != nil {
				return "", err
			}
			return docs.GetTopic(topic)
		},
	}

	return []Function{window, methodology}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
