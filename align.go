package trailing

import (
	"fmt"
	"maps"
	"slices"
)

// Aligned holds the price observations of every ticker restricted to their common history.
type Aligned struct {
	Start Month // earliest common start
	End   Month // latest common end

	prices map[string][]PriceObservation // sorted by month, within [Start, End]
}

// Align restricts prices to the months covered by every ticker.
//
// The common history starts at the latest first observation and ends at the earliest last
// observation. It fails with an InsufficientDataError if there is no ticker, if a ticker has no
// observation at all, or if the histories do not overlap.
func Align(prices Prices) (*Aligned, error) {
	if len(prices) == 0 {
		return nil, &InsufficientDataError{Reason: "no ticker to align"}
	}

	tickers := slices.Sorted(maps.Keys(prices))
	sorted := make(map[string][]PriceObservation, len(prices))
	var start, end Month
	for i, ticker := range tickers {
		obs := prices[ticker]
		if len(obs) == 0 {
			return nil, &InsufficientDataError{Ticker: ticker, Reason: "no price observation"}
		}
		obs = slices.Clone(obs)
		slices.SortStableFunc(obs, func(a, b PriceObservation) int { return a.Month.Compare(b.Month) })
		for j, o := range obs {
			if o.Ticker != ticker {
				return nil, fmt.Errorf("%w: observation of %q on %v filed under %q", ErrInvalidObservation, o.Ticker, o.Month, ticker)
			}
			if j > 0 && obs[j-1].Month == o.Month {
				return nil, fmt.Errorf("%w: duplicate observation of %q on %v", ErrInvalidObservation, ticker, o.Month)
			}
		}
		sorted[ticker] = obs

		first, last := obs[0].Month, obs[len(obs)-1].Month
		if i == 0 || first.After(start) {
			start = first
		}
		if i == 0 || last.Before(end) {
			end = last
		}
	}

	if start.After(end) {
		return nil, &InsufficientDataError{Start: start, End: end, Reason: "no overlapping history across all positions"}
	}

	a := &Aligned{Start: start, End: end, prices: make(map[string][]PriceObservation, len(sorted))}
	for ticker, obs := range sorted {
		lo, _ := slices.BinarySearchFunc(obs, start, func(o PriceObservation, m Month) int { return o.Month.Compare(m) })
		hi, found := slices.BinarySearchFunc(obs, end, func(o PriceObservation, m Month) int { return o.Month.Compare(m) })
		if found {
			hi++
		}
		a.prices[ticker] = obs[lo:hi]
	}
	return a, nil
}

// Tickers returns the aligned tickers in lexicographic order.
func (a *Aligned) Tickers() []string { return slices.Sorted(maps.Keys(a.prices)) }

// Series returns the aligned observations of ticker, sorted by month.
func (a *Aligned) Series(ticker string) []PriceObservation { return slices.Clone(a.prices[ticker]) }

// Observation returns the observation of ticker on month m and true, or false if there is none.
func (a *Aligned) Observation(ticker string, m Month) (PriceObservation, bool) {
	obs := a.prices[ticker]
	i, found := slices.BinarySearchFunc(obs, m, func(o PriceObservation, m Month) int { return o.Month.Compare(m) })
	if !found {
		return PriceObservation{}, false
	}
	return obs[i], true
}

// Observations returns every aligned observation sorted by (ticker, month).
func (a *Aligned) Observations() []PriceObservation {
	var all []PriceObservation
	for _, ticker := range a.Tickers() {
		all = append(all, a.prices[ticker]...)
	}
	return all
}
