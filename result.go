package trailing

// Statistics summarizes a monthly return series over an analysis window.
// Returns and volatilities are fractions (0.1 is 10%).
type Statistics struct {
	CumulativeReturn     float64 `json:"cumulative_return"`
	AnnualizedReturn     float64 `json:"annualized_return"`
	MonthlyReturn        float64 `json:"monthly_return"`
	AnnualizedVolatility float64 `json:"annualized_volatility"`
	MonthlyVolatility    float64 `json:"monthly_volatility"`
	Sharpe               float64 `json:"sharpe"`
	MonthlySharpe        float64 `json:"monthly_sharpe"`
}

// MonthlyRecord is the state of the portfolio and the benchmark at the end of a month of the window.
type MonthlyRecord struct {
	Month                     Month   `json:"month"`
	Value                     float64 `json:"value"`
	Return                    float64 `json:"return"`
	CumulativeReturn          float64 `json:"cumulative_return"`
	BenchmarkReturn           float64 `json:"benchmark_return"`
	BenchmarkCumulativeReturn float64 `json:"benchmark_cumulative_return"`
	RiskFreeRate              float64 `json:"risk_free_rate"`
	ExcessReturn              float64 `json:"excess_return"`
	BenchmarkExcessReturn     float64 `json:"benchmark_excess_return"`
}

// PeriodResult holds the performance of the portfolio and of the benchmark over one AnalysisWindow.
type PeriodResult struct {
	Window     AnalysisWindow `json:"window"`
	Months     int            `json:"months"`
	Years      float64        `json:"years"`
	StartValue Money          `json:"start_value"`
	EndValue   Money          `json:"end_value"`
	Portfolio  Statistics     `json:"portfolio"`
	Benchmark  Statistics     `json:"benchmark"`
	// Beta of the portfolio against the benchmark. The benchmark's beta is 1 by definition.
	Beta    float64         `json:"beta"`
	Records []MonthlyRecord `json:"records"`
}

// PortfolioCurve returns the cumulative return of the portfolio for every return month of the window.
func (r *PeriodResult) PortfolioCurve() *History[float64] {
	curve := new(History[float64])
	for _, rec := range r.Records {
		curve.Append(rec.Month, rec.CumulativeReturn)
	}
	return curve
}

// BenchmarkCurve returns the cumulative return of the benchmark for every return month of the window.
func (r *PeriodResult) BenchmarkCurve() *History[float64] {
	curve := new(History[float64])
	for _, rec := range r.Records {
		curve.Append(rec.Month, rec.BenchmarkCumulativeReturn)
	}
	return curve
}
