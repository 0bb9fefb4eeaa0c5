package renderer

import (
	"fmt"

	"github.com/etnz/trailing"
)

// Curves returns the cumulative return curves of the portfolio and the benchmark, ready to plot.
//
// Both curves start with a 0% point on the window start month, the month before the first
// return, so that plotted curves always start at zero.
func Curves(r *trailing.PeriodResult) (portfolio, benchmark *trailing.History[float64]) {
	portfolio = r.PortfolioCurve().Append(r.Window.Start, 0)
	benchmark = r.BenchmarkCurve().Append(r.Window.Start, 0)
	return portfolio, benchmark
}

// RiskReturnPoint is a point in a risk (annualized volatility) over return (annualized return) plane.
type RiskReturnPoint struct {
	Label      string  `json:"label"`
	Years      int     `json:"years"`
	Benchmark  bool    `json:"benchmark"`
	Volatility float64 `json:"volatility"`
	Return     float64 `json:"return"`
}

// RiskReturn returns the risk/return points of the portfolio and of the benchmark for every window.
func RiskReturn(results []*trailing.PeriodResult) []RiskReturnPoint {
	points := make([]RiskReturnPoint, 0, 2*len(results))
	for _, r := range results {
		years := r.Window.RequestedYears
		points = append(points,
			RiskReturnPoint{
				Label:      fmt.Sprintf("Portfolio %s", WindowLabel(r.Window)),
				Years:      years,
				Volatility: r.Portfolio.AnnualizedVolatility,
				Return:     r.Portfolio.AnnualizedReturn,
			},
			RiskReturnPoint{
				Label:      fmt.Sprintf("Benchmark %s", WindowLabel(r.Window)),
				Years:      years,
				Benchmark:  true,
				Volatility: r.Benchmark.AnnualizedVolatility,
				Return:     r.Benchmark.AnnualizedReturn,
			},
		)
	}
	return points
}

// SummaryRow holds the headline statistics of a window.
type SummaryRow struct {
	AnnualReturn         float64 `json:"annual_return"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	Sharpe               float64 `json:"sharpe"`
	Beta                 float64 `json:"beta"`
}

// SummaryTable is the headline statistics of the portfolio and of the benchmark for a window.
type SummaryTable struct {
	Window    trailing.AnalysisWindow `json:"window"`
	Portfolio SummaryRow              `json:"portfolio"`
	Benchmark SummaryRow              `json:"benchmark"`
}

// Summary returns the headline statistics of a window. The beta of the benchmark is 1 by definition.
func Summary(r *trailing.PeriodResult) SummaryTable {
	return SummaryTable{
		Window: r.Window,
		Portfolio: SummaryRow{
			AnnualReturn:         r.Portfolio.AnnualizedReturn,
			AnnualizedVolatility: r.Portfolio.AnnualizedVolatility,
			Sharpe:               r.Portfolio.Sharpe,
			Beta:                 r.Beta,
		},
		Benchmark: SummaryRow{
			AnnualReturn:         r.Benchmark.AnnualizedReturn,
			AnnualizedVolatility: r.Benchmark.AnnualizedVolatility,
			Sharpe:               r.Benchmark.Sharpe,
			Beta:                 1,
		},
	}
}

// WindowLabel names a window after its length, like "3y" or "2y7m" when truncated.
func WindowLabel(w trailing.AnalysisWindow) string {
	months := w.Months()
	if !w.Truncated() || months%12 == 0 {
		return fmt.Sprintf("%dy", months/12)
	}
	if months < 12 {
		return fmt.Sprintf("%dm", months)
	}
	return fmt.Sprintf("%dy%dm", months/12, months%12)
}
