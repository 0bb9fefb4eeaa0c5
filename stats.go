package trailing

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// monthsPerYear is the annualization factor of monthly statistics.
const monthsPerYear = 12

// minDispersion is the standard deviation below which a series is considered constant.
// Constant monthly returns computed from prices carry rounding noise around 1e-16.
const minDispersion = 1e-12

// values returns the values of h in chronological order.
func values(h *History[float64]) []float64 {
	v := make([]float64, 0, h.Len())
	for _, x := range h.Values() {
		v = append(v, x)
	}
	return v
}

// ComputeStatistics summarizes a monthly return series.
//
// cumulative is the cumulative return at the end of the window, excess the series of returns
// minus the risk-free rate, months the length of the window.
func ComputeStatistics(returns *History[float64], cumulative float64, excess *History[float64], months int) (Statistics, error) {
	if months <= 0 {
		return Statistics{}, &UndefinedStatisticError{Statistic: "return", Observations: returns.Len(), Reason: "empty window"}
	}
	years := float64(months) / monthsPerYear
	s := Statistics{
		CumulativeReturn: cumulative,
		AnnualizedReturn: math.Pow(1+cumulative, 1/years) - 1,
		MonthlyReturn:    math.Pow(1+cumulative, 1/float64(months)) - 1,
	}

	r := values(returns)
	if len(r) < 2 {
		return s, &UndefinedStatisticError{Statistic: "volatility", Observations: len(r), Reason: "sample standard deviation needs at least 2 observations"}
	}
	s.MonthlyVolatility = stat.StdDev(r, nil)
	s.AnnualizedVolatility = s.MonthlyVolatility * math.Sqrt(monthsPerYear)

	sharpe, err := Sharpe(excess)
	if err != nil {
		return s, err
	}
	s.MonthlySharpe = sharpe
	s.Sharpe = sharpe * math.Sqrt(monthsPerYear)
	return s, nil
}

// Sharpe returns the monthly Sharpe ratio of an excess return series: its mean over its sample standard deviation.
func Sharpe(excess *History[float64]) (float64, error) {
	x := values(excess)
	if len(x) < 2 {
		return 0, &UndefinedStatisticError{Statistic: "sharpe ratio", Observations: len(x), Reason: "sample standard deviation needs at least 2 observations"}
	}
	mean, sd := stat.MeanStdDev(x, nil)
	if sd < minDispersion {
		return 0, &UndefinedStatisticError{Statistic: "sharpe ratio", Observations: len(x), Reason: "excess returns have no dispersion"}
	}
	return mean / sd, nil
}

// Beta returns the sensitivity of returns to benchmark: their sample covariance over the sample variance of benchmark.
// Both series are paired by month, months missing from either side are ignored.
func Beta(returns, benchmark *History[float64]) (float64, error) {
	var p, b []float64
	for m, r := range returns.Values() {
		if x, ok := benchmark.Get(m); ok {
			p = append(p, r)
			b = append(b, x)
		}
	}
	if len(p) < 2 {
		return 0, &UndefinedStatisticError{Statistic: "beta", Observations: len(p), Reason: "sample covariance needs at least 2 observations"}
	}
	variance := stat.Variance(b, nil)
	if variance < minDispersion*minDispersion {
		return 0, &UndefinedStatisticError{Statistic: "beta", Observations: len(p), Reason: "benchmark returns have no dispersion"}
	}
	return stat.Covariance(p, b, nil) / variance, nil
}
