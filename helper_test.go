package trailing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// mo is a helper for test to create months in 2020 and later: mo(1) is 2020-01, mo(13) is 2021-01.
func mo(n int) Month { return NewMonth(2020, time.Month(n)) }

// series builds the observations of ticker from adjusted closes, starting on 'from'.
// Close is equal to adjusted close.
func series(ticker string, from Month, adj ...float64) []PriceObservation {
	obs := make([]PriceObservation, 0, len(adj))
	for i, a := range adj {
		d := decimal.NewFromFloat(a)
		obs = append(obs, PriceObservation{
			Ticker:        ticker,
			Month:         from.Add(i),
			Close:         d,
			AdjustedClose: d,
		})
	}
	return obs
}

// monthly builds a History from consecutive values starting on 'from'.
func monthly(from Month, values ...float64) *History[float64] {
	h := new(History[float64])
	for i, v := range values {
		h.Append(from.Add(i), v)
	}
	return h
}

// constant builds a History with the same value for every month in [from, to].
func constant(from, to Month, v float64) *History[float64] {
	h := new(History[float64])
	for m := from; !m.After(to); m = m.Add(1) {
		h.Append(m, v)
	}
	return h
}

// mustAlign aligns prices or fails the test.
func mustAlign(t *testing.T, prices Prices) *Aligned {
	t.Helper()
	a, err := Align(prices)
	if err != nil {
		t.Fatalf("Align() unexpected error: %v", err)
	}
	return a
}
