package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/trailing"
	"github.com/etnz/trailing/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
)

type analyzeCmd struct {
	years   string
	fetch   bool
	json    bool
	monthly bool
	html    string
	xlsx    string
	charts  string
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "computes trailing returns of the portfolio" }
func (*analyzeCmd) Usage() string {
	return `tpr analyze [-years 1,2,3,5] [-fetch] [-json] [-monthly] [-html <file>] [-xlsx <file>] [-charts <dir>]

Computes the return, volatility, Sharpe ratio and beta of the portfolio and of
the benchmark over trailing windows, from the series in the data directory.

Windows end on the last month every security has a price for. A window longer
than the common history is truncated and reported with its actual length,
longer windows are then skipped.

See 'tpr topic methodology' for the details of the computation.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.years, "years", "1,2,3,5", "Comma separated lookbacks in years, in ascending order.")
	f.BoolVar(&c.fetch, "fetch", false, "Fetch fresh data first. Always true when APP_ENV=production.")
	f.BoolVar(&c.json, "json", false, "Print the results as JSON instead of markdown.")
	f.BoolVar(&c.monthly, "monthly", false, "Include the month by month records of every window.")
	f.StringVar(&c.html, "html", "", "Write the report as HTML to this file.")
	f.StringVar(&c.xlsx, "xlsx", "", "Write the results as an Excel workbook to this file.")
	f.StringVar(&c.charts, "charts", "", "Write PNG charts into this directory.")
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	opts := renderer.ReportOptions{Benchmark: cfg.Benchmark, Monthly: c.monthly}
	if err := c.export(results, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting results: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding results: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ReportMarkdown(results, opts))
	return subcommands.ExitSuccess
}

// export writes the requested files.
func (c *analyzeCmd) export(results []*trailing.PeriodResult, opts renderer.ReportOptions) error {
	if c.html != "" {
		page, err := renderer.HTML("Trailing Returns", renderer.ReportMarkdown(results, opts))
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.html, page, 0o644); err != nil {
			return err
		}
		log.Info().Str("file", c.html).Msg("html report written")
	}

	if c.xlsx != "" {
		var buf bytes.Buffer
		if err := renderer.WriteWorkbook(&buf, results); err != nil {
			return err
		}
		if err := os.WriteFile(c.xlsx, buf.Bytes(), 0o644); err != nil {
			return err
		}
		log.Info().Str("file", c.xlsx).Msg("workbook written")
	}

	if c.charts != "" {
		if err := writeCharts(c.charts, results, opts.Benchmark); err != nil {
			return err
		}
		log.Info().Str("dir", c.charts).Msg("charts written")
	}
	return nil
}

// writeCharts writes a cumulative return chart per window, and the risk/return chart of all windows.
func writeCharts(dir string, results []*trailing.PeriodResult, benchmark string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, r := range results {
		png, err := renderer.CumulativeChart(r, benchmark)
		if err != nil {
			return err
		}
		name := filepath.Join(dir, fmt.Sprintf("cumulative-%s.png", renderer.WindowLabel(r.Window)))
		if err := os.WriteFile(name, png, 0o644); err != nil {
			return err
		}
	}
	png, err := renderer.RiskReturnChart(results)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "risk-return.png"), png, 0o644)
}
