package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/trailing"
	"github.com/rs/zerolog/log"
)

// TickerFailure is the reason a ticker could not be fetched.
type TickerFailure struct {
	Ticker string
	Err    error
}

// FetchError lists every ticker that could not be fetched.
type FetchError struct {
	Failures []TickerFailure
}

func (e *FetchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cannot fetch %d ticker(s):", len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "\n  %s: %v", f.Ticker, f.Err)
	}
	return b.String()
}

// Unwrap returns the errors of every failure, for errors.Is.
func (e *FetchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// Tickers returns the failed tickers whose error matches target.
func (e *FetchError) Tickers(target error) []string {
	var tickers []string
	for _, f := range e.Failures {
		if errors.Is(f.Err, target) {
			tickers = append(tickers, f.Ticker)
		}
	}
	return tickers
}

// FetchPortfolio returns the price observations of every ticker.
//
// It never returns a partial result: if any ticker fails, the result is nil and the error is a
// *FetchError listing every failed ticker and why.
func (c *Client) FetchPortfolio(ctx context.Context, tickers []string) (trailing.Prices, error) {
	prices := make(trailing.Prices, len(tickers))
	var failures []TickerFailure
	for _, ticker := range tickers {
		obs, err := c.MonthlyAdjusted(ctx, ticker)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err != nil {
			log.Error().Str("ticker", ticker).Err(err).Msg("fetch failed")
			failures = append(failures, TickerFailure{Ticker: ticker, Err: err})
			continue
		}
		log.Info().Str("ticker", ticker).Int("months", len(obs)).Msg("fetched")
		prices[ticker] = obs
	}
	if len(failures) > 0 {
		return nil, &FetchError{Failures: failures}
	}
	return prices, nil
}

// Benchmark returns the monthly returns of the adjusted close of symbol, typically an index fund like SPY.
func (c *Client) Benchmark(ctx context.Context, symbol string) (*trailing.BenchmarkSeries, error) {
	obs, err := c.MonthlyAdjusted(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch benchmark %q: %w", symbol, err)
	}
	return trailing.SecurityReturns(obs), nil
}
