// Package trailing computes historical performance statistics of a portfolio of stocks over
// trailing windows, benchmarked against a market index and a risk-free rate.
//
// The computation is a pipeline of pure transformations over monthly series:
//   - Align restricts the price histories of every security to their common months.
//   - SelectWindow picks the trailing window of a number of years ending on the last common
//     month, truncated when the history is shorter.
//   - Compute values the portfolio over a window and derives its returns, volatility, Sharpe
//     ratio and beta against the benchmark.
//   - Analyze runs Compute over several lookbacks, like 1, 2, 3 and 5 years.
//
// Quantities are constant over the whole history and the portfolio holds a single currency.
//
// The package also provides the portfolio CSV loader and the on-disk CSV cache of the series.
// Retrieval lives in the alphavantage and fred packages, presentation in renderer, and the
// `tpr` command-line tool in cmd.
package trailing
