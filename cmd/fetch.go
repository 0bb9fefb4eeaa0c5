package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/trailing/alphavantage"
	"github.com/google/subcommands"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetches prices, benchmark and risk-free rate into the data directory" }
func (*fetchCmd) Usage() string {
	return `tpr fetch

Fetches the monthly adjusted prices of every security of the portfolio and of
the benchmark from Alpha Vantage, and the risk-free rate from FRED. The series
are written to the data directory as CSV files.

Requires the ALPHAVANTAGE_API_KEY and FRED_API_KEY environment variables, they
can be set in a .env file. Alpha Vantage free tier allows 5 requests per minute,
fetching a large portfolio takes a while.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	pf, err := loadPortfolio(cfg.PortfolioFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := fetch(ctx, cfg, pf); err != nil {
		var ferr *alphavantage.FetchError
		if errors.As(err, &ferr) {
			if invalid := ferr.Tickers(alphavantage.ErrInvalidCall); len(invalid) > 0 {
				fmt.Fprintf(os.Stderr, "Unknown tickers: %v, check the portfolio file.\n", invalid)
			}
		}
		fmt.Fprintf(os.Stderr, "Error fetching data: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Data of %d securities fetched into %s\n", len(pf), cfg.DataDir)
	return subcommands.ExitSuccess
}
