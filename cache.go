package trailing

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Column names of the series files.
const (
	BenchmarkColumn = "benchmark_return"
	RiskFreeColumn  = "risk_free_rate"
)

// Cache is a folder holding pulled market data in CSV files: one price file per ticker,
// a benchmark file and a risk-free file.
type Cache struct {
	Dir string
}

func (c Cache) pricesPath(ticker string) string {
	return filepath.Join(c.Dir, strings.ToUpper(ticker)+".csv")
}
func (c Cache) benchmarkPath() string { return filepath.Join(c.Dir, "benchmark.csv") }
func (c Cache) riskFreePath() string  { return filepath.Join(c.Dir, "riskfree.csv") }

// WritePrices stores the observations of ticker.
func (c Cache) WritePrices(ticker string, obs []PriceObservation) error {
	return c.write(c.pricesPath(ticker), func(w io.Writer) error { return EncodePrices(w, obs) })
}

// ReadPrices loads the observations of ticker.
func (c Cache) ReadPrices(ticker string) ([]PriceObservation, error) {
	f, err := os.Open(c.pricesPath(ticker))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	obs, err := DecodePrices(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", f.Name(), err)
	}
	return obs, nil
}

// LoadPrices loads the observations of all tickers. Every missing or invalid file is reported.
func (c Cache) LoadPrices(tickers []string) (Prices, error) {
	prices := make(Prices, len(tickers))
	var errs []error
	for _, ticker := range tickers {
		obs, err := c.ReadPrices(ticker)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		prices[ticker] = obs
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return prices, nil
}

// WriteBenchmark stores the benchmark series.
func (c Cache) WriteBenchmark(h *BenchmarkSeries) error {
	return c.write(c.benchmarkPath(), func(w io.Writer) error { return EncodeSeries(w, BenchmarkColumn, h) })
}

// ReadBenchmark loads the benchmark series.
func (c Cache) ReadBenchmark() (*BenchmarkSeries, error) {
	return c.readSeries(c.benchmarkPath(), BenchmarkColumn)
}

// WriteRiskFree stores the risk-free series.
func (c Cache) WriteRiskFree(h *RiskFreeSeries) error {
	return c.write(c.riskFreePath(), func(w io.Writer) error { return EncodeSeries(w, RiskFreeColumn, h) })
}

// ReadRiskFree loads the risk-free series.
func (c Cache) ReadRiskFree() (*RiskFreeSeries, error) {
	return c.readSeries(c.riskFreePath(), RiskFreeColumn)
}

func (c Cache) readSeries(path, column string) (*History[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	h, err := DecodeSeries(f, column)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	return h, nil
}

// write encodes into a temporary file and renames it to path, so readers never see a partial file.
func (c Cache) write(path string, encode func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return err
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(c.Dir, "tmp-*.csv")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
