package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/trailing"
	"github.com/etnz/trailing/alphavantage"
	"github.com/etnz/trailing/fred"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// loadPortfolio decodes the portfolio file.
func loadPortfolio(path string) (trailing.Portfolio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open portfolio: %w", err)
	}
	defer f.Close()

	pf, err := trailing.DecodePortfolio(f)
	if err != nil {
		return nil, fmt.Errorf("invalid portfolio %q: %w", path, err)
	}
	return pf, nil
}

// fetch pulls the prices of the portfolio, the benchmark and the risk-free rate into the cache.
//
// Nothing is written unless every series is retrieved.
func fetch(ctx context.Context, cfg *Config, pf trailing.Portfolio) error {
	if cfg.AlphaVantageAPIKey == "" {
		return errors.New("ALPHAVANTAGE_API_KEY is not set")
	}
	if cfg.FredAPIKey == "" {
		return errors.New("FRED_API_KEY is not set")
	}
	av := alphavantage.New(cfg.AlphaVantageAPIKey, cfg.RequestsPerMinute)
	fr := fred.New(cfg.FredAPIKey)

	var (
		prices trailing.Prices
		bench  *trailing.BenchmarkSeries
		rf     *trailing.RiskFreeSeries
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		// Both calls share the rate limit of the client.
		if prices, err = av.FetchPortfolio(ctx, pf.Tickers()); err != nil {
			return err
		}
		bench, err = av.Benchmark(ctx, cfg.Benchmark)
		return err
	})
	g.Go(func() (err error) {
		rf, err = fr.RiskFree(ctx, cfg.RiskFreeSeries)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	cache := trailing.Cache{Dir: cfg.DataDir}
	for ticker, obs := range prices {
		if err := cache.WritePrices(ticker, obs); err != nil {
			return err
		}
		log.Debug().Str("ticker", ticker).Int("months", len(obs)).Msg("prices cached")
	}
	if err := cache.WriteBenchmark(bench); err != nil {
		return err
	}
	if err := cache.WriteRiskFree(rf); err != nil {
		return err
	}
	log.Info().Int("tickers", len(prices)).Str("benchmark", cfg.Benchmark).Str("risk-free", cfg.RiskFreeSeries).Str("dir", cfg.DataDir).Msg("data fetched")
	return nil
}

// analyze reads the cached series of the portfolio and analyzes them over the lookbacks.
//
// Like trailing.Analyze, it may return the results of the windows that succeeded together with an error.
func analyze(ctx context.Context, cfg *Config, pf trailing.Portfolio, lookbacks []int) ([]*trailing.PeriodResult, error) {
	cache := trailing.Cache{Dir: cfg.DataDir}
	prices, err := cache.LoadPrices(pf.Tickers())
	if err != nil {
		return nil, fmt.Errorf("cannot load prices, run fetch first: %w", err)
	}
	bench, err := cache.ReadBenchmark()
	if err != nil {
		return nil, fmt.Errorf("cannot load benchmark, run fetch first: %w", err)
	}
	rf, err := cache.ReadRiskFree()
	if err != nil {
		return nil, fmt.Errorf("cannot load risk-free rate, run fetch first: %w", err)
	}

	data, err := trailing.Align(prices)
	if err != nil {
		return nil, err
	}
	log.Debug().Stringer("start", data.Start).Stringer("end", data.End).Msg("common history")
	return trailing.Analyze(ctx, pf, data, bench, rf, lookbacks)
}

// parseYears parses a comma separated list of lookbacks, like "1,2,3,5".
func parseYears(s string) ([]int, error) {
	var years []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		y, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid lookback %q: %w", field, err)
		}
		years = append(years, y)
	}
	if len(years) == 0 {
		return nil, fmt.Errorf("no lookback in %q", s)
	}
	return years, nil
}

// prepare loads the configuration and the portfolio and, when fresh data is requested, fetches it.
func prepare(ctx context.Context, refresh bool) (*Config, trailing.Portfolio, error) {
	cfg, err := config()
	if err != nil {
		return nil, nil, err
	}
	pf, err := loadPortfolio(cfg.PortfolioFile)
	if err != nil {
		return nil, nil, err
	}
	if refresh || cfg.IsProduction() {
		if err := fetch(ctx, cfg, pf); err != nil {
			return nil, nil, err
		}
	}
	return cfg, pf, nil
}
