package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/trailing"
	md "github.com/nao1215/markdown"
)

// ReportOptions holds configuration for rendering a trailing returns report.
type ReportOptions struct {
	Title     string // Defaults to "Trailing Returns".
	Benchmark string // Benchmark symbol, for display.
	Monthly   bool   // Render the month by month table of every window.
}

func pct(f float64) string       { return trailing.Pct(f).String() }
func signedPct(f float64) string { return trailing.Pct(f).SignedString() }
func ratio(f float64) string     { return fmt.Sprintf("%.2f", f) }

// ReportMarkdown renders the results of a multi window analysis into a markdown report.
func ReportMarkdown(results []*trailing.PeriodResult, opts ReportOptions) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := opts.Title
	if title == "" {
		title = "Trailing Returns"
	}
	doc.H1(title)
	if len(results) == 0 {
		doc.PlainText("No analysis window could be computed.")
		return doc.String()
	}
	benchmark := opts.Benchmark
	if benchmark == "" {
		benchmark = "the benchmark"
	}
	last := results[len(results)-1]
	doc.PlainText(fmt.Sprintf("Performance of the portfolio against %s over %d trailing window(s) ending %s, with a value of %s at the end.",
		benchmark, len(results), last.Window.End, last.EndValue))

	doc.H2("Summary")
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		s := Summary(r)
		rows = append(rows, []string{
			WindowLabel(r.Window),
			fmt.Sprintf("%s to %s", r.Window.Start, r.Window.End),
			signedPct(s.Portfolio.AnnualReturn),
			pct(s.Portfolio.AnnualizedVolatility),
			ratio(s.Portfolio.Sharpe),
			ratio(s.Portfolio.Beta),
			signedPct(s.Benchmark.AnnualReturn),
			pct(s.Benchmark.AnnualizedVolatility),
			ratio(s.Benchmark.Sharpe),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Window", "Period", "Return", "Volatility", "Sharpe", "Beta", "Benchmark Return", "Benchmark Volatility", "Benchmark Sharpe"},
		Rows:   rows,
	})

	for _, r := range results {
		doc.H2(fmt.Sprintf("%s window", WindowLabel(r.Window)))
		if r.Window.Truncated() {
			doc.PlainText(fmt.Sprintf("%d year(s) requested, only %.2f year(s) of common history available.", r.Window.RequestedYears, r.Window.ActualYears))
		}
		doc.PlainText(fmt.Sprintf("From %s (%s) to %s (%s), %d monthly returns.", r.Window.Start, r.StartValue, r.Window.End, r.EndValue, r.Months))
		doc.Table(md.TableSet{
			Header: []string{"Statistic", "Portfolio", "Benchmark"},
			Rows: [][]string{
				{"Cumulative Return", signedPct(r.Portfolio.CumulativeReturn), signedPct(r.Benchmark.CumulativeReturn)},
				{"Annualized Return", signedPct(r.Portfolio.AnnualizedReturn), signedPct(r.Benchmark.AnnualizedReturn)},
				{"Monthly Return", signedPct(r.Portfolio.MonthlyReturn), signedPct(r.Benchmark.MonthlyReturn)},
				{"Annualized Volatility", pct(r.Portfolio.AnnualizedVolatility), pct(r.Benchmark.AnnualizedVolatility)},
				{"Monthly Volatility", pct(r.Portfolio.MonthlyVolatility), pct(r.Benchmark.MonthlyVolatility)},
				{"Sharpe Ratio", ratio(r.Portfolio.Sharpe), ratio(r.Benchmark.Sharpe)},
				{"Beta", ratio(r.Beta), ratio(1)},
			},
		})
		if opts.Monthly {
			doc.H3("Monthly")
			monthly := make([][]string, 0, len(r.Records))
			for _, rec := range r.Records {
				monthly = append(monthly, []string{
					rec.Month.String(),
					trailing.M(rec.Value, trailing.DefaultCurrency).String(),
					signedPct(rec.Return),
					signedPct(rec.CumulativeReturn),
					signedPct(rec.BenchmarkReturn),
					signedPct(rec.BenchmarkCumulativeReturn),
					pct(rec.RiskFreeRate),
				})
			}
			doc.Table(md.TableSet{
				Header: []string{"Month", "Value", "Return", "Cumulative", "Benchmark", "Benchmark Cumulative", "Risk-Free"},
				Rows:   monthly,
			})
		}
	}
	return doc.String()
}
