package trailing

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

// SecurityReturns returns the monthly returns of the adjusted close of a sorted observation series.
//
// A month has a return only if the previous month is observed: the first month of the series,
// and any month following a gap, have none. A return is never assumed to be zero.
func SecurityReturns(obs []PriceObservation) *History[float64] {
	returns := new(History[float64])
	for i := 1; i < len(obs); i++ {
		prev, cur := obs[i-1], obs[i]
		if cur.Month.Sub(prev.Month) != 1 || prev.AdjustedClose.IsZero() {
			continue
		}
		r := cur.AdjustedClose.Div(prev.AdjustedClose).Sub(decimal.NewFromInt(1))
		returns.Append(cur.Month, r.InexactFloat64())
	}
	return returns
}

// StartValues returns the value of every position of the portfolio at the start of the window,
// that is its quantity times the close of the start month.
func StartValues(pf Portfolio, data *Aligned, w AnalysisWindow) (map[string]Money, error) {
	values := make(map[string]Money, len(pf))
	for _, p := range pf {
		obs, ok := data.Observation(p.Ticker, w.Start)
		if !ok {
			return nil, &MissingPeriodDataError{Ticker: p.Ticker, Month: w.Start, Window: w}
		}
		values[p.Ticker] = M(obs.Close, DefaultCurrency).Mul(p.Quantity)
	}
	return values, nil
}

// PositionValues returns the value of a position for every month of the window, start included.
//
// The start value is compounded with the monthly returns of the security: the value on month m
// is start times the product of (1+return) from Start+1 to m.
func PositionValues(ticker string, start Money, returns *History[float64], w AnalysisWindow) (*History[float64], error) {
	values := new(History[float64])
	value := start.Float64()
	cum := 1.0
	values.Append(w.Start, value)
	for m := w.Start.Add(1); !m.After(w.End); m = m.Add(1) {
		r, ok := returns.Get(m)
		if !ok {
			return nil, &MissingPeriodDataError{Ticker: ticker, Month: m, Window: w}
		}
		cum *= 1 + r
		values.Append(m, value*cum)
	}
	return values, nil
}

// AggregateValues sums position values month by month.
func AggregateValues(positions map[string]*History[float64]) *History[float64] {
	total := new(History[float64])
	// sorted for a deterministic floating point sum.
	for _, ticker := range slices.Sorted(maps.Keys(positions)) {
		for m, v := range positions[ticker].Values() {
			sum, _ := total.Get(m)
			total.Append(m, sum+v)
		}
	}
	return total
}

// PortfolioReturns returns the monthly returns of the portfolio value.
//
// The return of the first month of the window is measured against the start value, later
// months against the previous month value.
func PortfolioReturns(values *History[float64], start float64, w AnalysisWindow) (*History[float64], error) {
	returns := new(History[float64])
	prev := start
	for m := w.Start.Add(1); !m.After(w.End); m = m.Add(1) {
		v, ok := values.Get(m)
		if !ok {
			return nil, &MissingPeriodDataError{Ticker: "portfolio", Month: m, Window: w}
		}
		if prev == 0 {
			return nil, &UndefinedStatisticError{Statistic: "portfolio return", Observations: returns.Len(), Reason: "portfolio value is zero on " + m.Add(-1).String()}
		}
		returns.Append(m, v/prev-1)
		prev = v
	}
	return returns, nil
}

// JoinBenchmark restricts the benchmark returns and risk-free rates to the return months of the window.
// Every month from Start+1 to End must be present in both series.
func JoinBenchmark(w AnalysisWindow, benchmark *BenchmarkSeries, riskFree *RiskFreeSeries) (bench, rf *History[float64], err error) {
	bench, rf = new(History[float64]), new(History[float64])
	for m := w.Start.Add(1); !m.After(w.End); m = m.Add(1) {
		b, ok := benchmark.Get(m)
		if !ok {
			return nil, nil, &MissingBenchmarkDataError{Series: BenchmarkSeriesName, Month: m, Window: w}
		}
		r, ok := riskFree.Get(m)
		if !ok {
			return nil, nil, &MissingBenchmarkDataError{Series: RiskFreeSeriesName, Month: m, Window: w}
		}
		bench.Append(m, b)
		rf.Append(m, r)
	}
	return bench, rf, nil
}

// CumulativeReturns compounds monthly returns: the growth is seeded at 1 on the month before the
// first return, and the cumulative return on month m is the growth on m minus 1.
func CumulativeReturns(returns *History[float64]) *History[float64] {
	cumulative := new(History[float64])
	growth := 1.0
	for m, r := range returns.Values() {
		growth *= 1 + r
		cumulative.Append(m, growth-1)
	}
	return cumulative
}

// ExcessReturns returns the monthly returns minus the risk-free rate of the same month.
func ExcessReturns(returns, riskFree *History[float64]) *History[float64] {
	excess := new(History[float64])
	for m, r := range returns.Values() {
		rf, _ := riskFree.Get(m)
		excess.Append(m, r-rf)
	}
	return excess
}

// Compute returns the performance of the portfolio and of the benchmark over the window.
//
// It fails with a DegenerateWindowError if the window has no return month, with a
// MissingPeriodDataError or a MissingBenchmarkDataError if a series has a gap in the window,
// and with an UndefinedStatisticError if a statistic would divide by zero.
func Compute(pf Portfolio, data *Aligned, w AnalysisWindow, benchmark *BenchmarkSeries, riskFree *RiskFreeSeries) (*PeriodResult, error) {
	months := w.Months()
	if months <= 0 {
		return nil, &DegenerateWindowError{Window: w}
	}

	starts, err := StartValues(pf, data, w)
	if err != nil {
		return nil, err
	}
	positions := make(map[string]*History[float64], len(pf))
	startValue := M(0, DefaultCurrency)
	for _, p := range pf {
		values, err := PositionValues(p.Ticker, starts[p.Ticker], SecurityReturns(data.Series(p.Ticker)), w)
		if err != nil {
			return nil, err
		}
		positions[p.Ticker] = values
		startValue = startValue.Add(starts[p.Ticker])
	}
	values := AggregateValues(positions)

	returns, err := PortfolioReturns(values, startValue.Float64(), w)
	if err != nil {
		return nil, err
	}
	bench, rf, err := JoinBenchmark(w, benchmark, riskFree)
	if err != nil {
		return nil, err
	}

	cumulative := CumulativeReturns(returns)
	benchCumulative := CumulativeReturns(bench)
	excess := ExcessReturns(returns, rf)
	benchExcess := ExcessReturns(bench, rf)

	_, total := cumulative.Latest()
	portfolio, err := ComputeStatistics(returns, total, excess, months)
	if err != nil {
		return nil, err
	}
	_, benchTotal := benchCumulative.Latest()
	benchStats, err := ComputeStatistics(bench, benchTotal, benchExcess, months)
	if err != nil {
		return nil, err
	}
	beta, err := Beta(returns, bench)
	if err != nil {
		return nil, err
	}

	_, endValue := values.Latest()
	res := &PeriodResult{
		Window:     w,
		Months:     months,
		Years:      float64(months) / monthsPerYear,
		StartValue: startValue,
		EndValue:   M(endValue, DefaultCurrency),
		Portfolio:  portfolio,
		Benchmark:  benchStats,
		Beta:       beta,
		Records:    make([]MonthlyRecord, 0, months),
	}
	for m, r := range returns.Values() {
		rec := MonthlyRecord{Month: m, Return: r}
		rec.Value, _ = values.Get(m)
		rec.CumulativeReturn, _ = cumulative.Get(m)
		rec.BenchmarkReturn, _ = bench.Get(m)
		rec.BenchmarkCumulativeReturn, _ = benchCumulative.Get(m)
		rec.RiskFreeRate, _ = rf.Get(m)
		rec.ExcessReturn, _ = excess.Get(m)
		rec.BenchmarkExcessReturn, _ = benchExcess.Get(m)
		res.Records = append(res.Records, rec)
	}
	return res, nil
}
