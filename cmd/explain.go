package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/trailing/agent"
	"github.com/etnz/trailing/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

type explainCmd struct {
	years string
	fetch bool
	model string
}

func (*explainCmd) Name() string     { return "explain" }
func (*explainCmd) Synopsis() string { return "discuss the trailing returns report with an AI analyst" }
func (*explainCmd) Usage() string {
	return `tpr explain [-years 1,2,3,5] [-fetch] [-model <model>] [question...]

Analyzes the portfolio, then starts an interactive session with a Gemini
analyst who has read the report. The question given as argument is asked first.
Type 'bye' to exit.

Requires the GEMINI_API_KEY environment variable.
`
}

func (c *explainCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.years, "years", "1,2,3,5", "Comma separated lookbacks in years, in ascending order.")
	f.BoolVar(&c.fetch, "fetch", false, "Fetch fresh data first. Always true when APP_ENV=production.")
	f.StringVar(&c.model, "model", agent.DefaultModel, "Gemini model of the analyst.")
}

func (c *explainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	years, err := parseYears(c.years)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, pf, err := prepare(ctx, c.fetch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	results, err := analyze(ctx, cfg, pf, years)
	if err != nil {
		if len(results) == 0 {
			fmt.Fprintf(os.Stderr, "Error analyzing portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		log.Warn().Err(err).Int("windows", len(results)).Msg("some windows could not be analyzed")
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(results, renderer.ReportOptions{Benchmark: cfg.Benchmark})
	analyst.ModelName = c.model
	if err := analyst.Start(ctx, client); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	session := agent.NewSession(os.Stdout, os.Stdin, analyst)
	session.Render = renderMarkdown

	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}
	if err := session.Run(ctx, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Analyst failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
