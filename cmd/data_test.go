package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/trailing"
	"github.com/etnz/trailing/renderer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cached writes 30 months of prices for two tickers, a benchmark and a risk-free rate into a new data directory.
func cached(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{DataDir: t.TempDir(), Benchmark: "SPY"}
	cache := trailing.Cache{Dir: cfg.DataDir}

	start := trailing.MustParseMonth("2022-01")
	bench := new(trailing.BenchmarkSeries)
	rf := new(trailing.RiskFreeSeries)
	prices := map[string][]trailing.PriceObservation{}
	for i := range 30 {
		m := start.Add(i)
		for j, ticker := range []string{"AAPL", "KO"} {
			p := decimal.NewFromInt(int64(50 + 10*j + i + 3*(i%4)))
			prices[ticker] = append(prices[ticker], trailing.PriceObservation{Ticker: ticker, Month: m, Close: p, AdjustedClose: p})
		}
		bench.Append(m, 0.01*float64(i%5)-0.015)
		rf.Append(m, 0.002)
	}
	for ticker, obs := range prices {
		require.NoError(t, cache.WritePrices(ticker, obs))
	}
	require.NoError(t, cache.WriteBenchmark(bench))
	require.NoError(t, cache.WriteRiskFree(rf))
	return cfg
}

func TestLoadPortfolio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,tck,qty\n1,aapl,10\n2,KO,4.5\n"), 0o644))

	pf, err := loadPortfolio(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "KO"}, pf.Tickers())

	_, err = loadPortfolio(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "cannot open portfolio")
}

func TestAnalyze(t *testing.T) {
	cfg := cached(t)
	pf := trailing.Portfolio{{Ticker: "AAPL", Quantity: trailing.Q(10)}, {Ticker: "KO", Quantity: trailing.Q(4.5)}}

	results, err := analyze(context.Background(), cfg, pf, []int{1, 2, 3, 5})
	require.NoError(t, err)
	require.Len(t, results, 3, "the 3 year window is truncated and the last one")
	assert.Equal(t, 12, results[0].Months)
	assert.Equal(t, 24, results[1].Months)
	assert.Equal(t, 29, results[2].Months)
	assert.True(t, results[2].Window.Truncated())

	t.Run("missing ticker", func(t *testing.T) {
		_, err := analyze(context.Background(), cfg, trailing.Portfolio{{Ticker: "MSFT", Quantity: trailing.Q(1)}}, []int{1})
		assert.ErrorContains(t, err, "run fetch first")
	})
}

func TestFetchRequiresKeys(t *testing.T) {
	pf := trailing.Portfolio{{Ticker: "AAPL", Quantity: trailing.Q(1)}}
	err := fetch(context.Background(), &Config{}, pf)
	assert.ErrorContains(t, err, "ALPHAVANTAGE_API_KEY")
	err = fetch(context.Background(), &Config{AlphaVantageAPIKey: "demo"}, pf)
	assert.ErrorContains(t, err, "FRED_API_KEY")
}

func TestParseYears(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{in: "1,2,3,5", want: []int{1, 2, 3, 5}},
		{in: " 1, 10 ,", want: []int{1, 10}},
		{in: "3", want: []int{3}},
		{in: "", wantErr: true},
		{in: "1,two", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseYears(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExport(t *testing.T) {
	cfg := cached(t)
	pf := trailing.Portfolio{{Ticker: "AAPL", Quantity: trailing.Q(2)}}
	results, err := analyze(context.Background(), cfg, pf, []int{1, 2})
	require.NoError(t, err)

	dir := t.TempDir()
	c := &analyzeCmd{
		html:   filepath.Join(dir, "report.html"),
		xlsx:   filepath.Join(dir, "report.xlsx"),
		charts: filepath.Join(dir, "charts"),
	}
	require.NoError(t, c.export(results, renderer.ReportOptions{Benchmark: "SPY"}))

	page, err := os.ReadFile(c.html)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<table>")

	book, err := os.ReadFile(c.xlsx)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(book, []byte("PK")), "xlsx is a zip archive")

	for _, name := range []string{"cumulative-1y.png", "cumulative-2y.png", "risk-return.png"} {
		assert.FileExists(t, filepath.Join(c.charts, name))
	}
}
