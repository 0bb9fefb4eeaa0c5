// Package cmd implements the CLI application computing trailing returns of a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
)

// Commands lists the subcommands of the application.
var Commands = []subcommands.Command{
	&fetchCmd{},
	&analyzeCmd{},
	&explainCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
	c.Register(c.HelpCommand(), "help")
	c.Register(c.FlagsCommand(), "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// Global flags take precedence over the environment.
var (
	portfolioFile  = flag.String("portfolio", "", "Path to the portfolio CSV file. Overrides PORTFOLIO_FILE_NAME.")
	dataDir        = flag.String("data", "", "Path to the data directory. Overrides DATA_DIR.")
	benchmark      = flag.String("benchmark", "", "Benchmark symbol. Overrides BENCHMARK_SYMBOL.")
	riskFreeSeries = flag.String("risk-free", "", "FRED series of the risk-free rate. Overrides RISK_FREE_SERIES.")
	Verbose        = flag.Bool("v", false, "Log debug messages. Overrides LOG_LEVEL.")
)

// renderMarkdown renders md for the terminal, or returns it as is when stdout is not a terminal.
func renderMarkdown(md string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return md
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// printMarkdown prints md to stdout.
func printMarkdown(md string) {
	fmt.Print(renderMarkdown(md))
}
