package renderer

import (
	"fmt"
	"math"

	"github.com/etnz/trailing"
	"github.com/vicanso/go-charts/v2"
)

// CumulativeChart renders the cumulative return curves of a window as a PNG line chart, in percent.
func CumulativeChart(r *trailing.PeriodResult, benchmark string) ([]byte, error) {
	portfolio, bench := Curves(r)
	if benchmark == "" {
		benchmark = "Benchmark"
	}

	var labels []string
	var p, b []float64
	yMin, yMax := 0.0, 0.0
	for m, v := range portfolio.Values() {
		bv, _ := bench.Get(m)
		labels = append(labels, m.String())
		p = append(p, 100*v)
		b = append(b, 100*bv)
		yMin = math.Min(yMin, math.Min(100*v, 100*bv))
		yMax = math.Max(yMax, math.Max(100*v, 100*bv))
	}
	yMin, yMax = math.Floor(yMin/5)*5, math.Ceil(yMax/5)*5
	if yMin == yMax {
		yMax = yMin + 5
	}

	split := len(labels) / 12
	if split < 1 {
		split = 1
	}

	names := []string{"Portfolio", benchmark}
	painter, err := charts.Render(
		charts.ChartOption{SeriesList: charts.NewSeriesListDataFromValues([][]float64{p, b}, charts.ChartTypeLine)},
		charts.TitleTextOptionFunc(fmt.Sprintf("Cumulative Return • %s", WindowLabel(r.Window)), fmt.Sprintf("%s to %s, %%", r.Window.Start, r.Window.End)),
		charts.XAxisOptionFunc(charts.XAxisOption{Data: labels, BoundaryGap: charts.FalseFlag(), SplitNumber: split}),
		charts.YAxisOptionFunc(charts.YAxisOption{Min: &yMin, Max: &yMax, DivideCount: 5}),
		charts.LegendOptionFunc(charts.LegendOption{Data: names, Left: charts.PositionRight}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(900),
		charts.HeightOptionFunc(500),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	buf, err := painter.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to generate chart bytes: %w", err)
	}
	return buf, nil
}

// RiskReturnChart renders the annualized return and volatility of every window as a PNG bar chart, in percent.
func RiskReturnChart(results []*trailing.PeriodResult) ([]byte, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("no window to chart")
	}
	points := RiskReturn(results)
	var labels []string
	values := make([][]float64, 4)
	for i := 0; i < len(points); i += 2 {
		pf, bench := points[i], points[i+1]
		labels = append(labels, WindowLabel(results[i/2].Window))
		values[0] = append(values[0], 100*pf.Return)
		values[1] = append(values[1], 100*pf.Volatility)
		values[2] = append(values[2], 100*bench.Return)
		values[3] = append(values[3], 100*bench.Volatility)
	}
	painter, err := charts.BarRender(values,
		charts.TitleTextOptionFunc("Risk and Return", "annualized, %"),
		charts.XAxisDataOptionFunc(labels),
		charts.LegendOptionFunc(charts.LegendOption{
			Data: []string{"Return", "Volatility", "Benchmark Return", "Benchmark Volatility"},
			Left: charts.PositionRight,
		}),
		charts.ThemeOptionFunc(charts.ThemeLight),
		charts.WidthOptionFunc(900),
		charts.HeightOptionFunc(500),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return painter.Bytes()
}
