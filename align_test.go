package trailing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlign(t *testing.T) {
	// A covers M1-M12, B covers M3-M10.
	a := series("A", mo(1), 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	b := series("B", mo(3), 3, 4, 5, 6, 7, 8, 9, 10)

	got, err := Align(Prices{"A": a, "B": b})
	require.NoError(t, err)

	assert.Equal(t, mo(3), got.Start)
	assert.Equal(t, mo(10), got.End)
	assert.Equal(t, []string{"A", "B"}, got.Tickers())
	assert.Len(t, got.Series("A"), 8)
	assert.Len(t, got.Series("B"), 8)

	obs := got.Observations()
	require.Len(t, obs, 16)
	for i := 1; i < len(obs); i++ {
		prev, cur := obs[i-1], obs[i]
		if prev.Ticker == cur.Ticker {
			assert.True(t, prev.Month.Before(cur.Month), "observations sorted by month within %s", cur.Ticker)
		} else {
			assert.Less(t, prev.Ticker, cur.Ticker, "observations sorted by ticker")
		}
		assert.False(t, cur.Month.Before(mo(3)) || cur.Month.After(mo(10)), "observation %v outside common range", cur.Month)
	}
}

func TestAlignSortsUnorderedInput(t *testing.T) {
	a := series("A", mo(1), 1, 2, 3)
	a[0], a[2] = a[2], a[0]

	got, err := Align(Prices{"A": a})
	require.NoError(t, err)
	assert.Equal(t, mo(1), got.Start)
	assert.Equal(t, mo(3), got.End)
	assert.Equal(t, mo(1), got.Series("A")[0].Month)
	assert.Equal(t, mo(1), a[2].Month, "input is not modified")
}

func TestAlignErrors(t *testing.T) {
	tests := []struct {
		name         string
		prices       Prices
		insufficient bool
	}{
		{"no ticker", Prices{}, true},
		{"empty ticker", Prices{"A": series("A", mo(1), 1, 2), "B": nil}, true},
		{"disjoint", Prices{"A": series("A", mo(1), 1, 2), "B": series("B", mo(5), 1, 2)}, true},
		{"misfiled", Prices{"A": series("B", mo(1), 1, 2)}, false},
		{"duplicate", Prices{"A": append(series("A", mo(1), 1, 2), series("A", mo(2), 3)...)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Align(tt.prices)
			require.Error(t, err)
			var insufficient *InsufficientDataError
			if tt.insufficient {
				assert.True(t, errors.As(err, &insufficient), "Align() = %v, want InsufficientDataError", err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidObservation)
			}
		})
	}
}

func TestAlignObservation(t *testing.T) {
	a := mustAlign(t, Prices{"A": series("A", mo(1), 10, 11, 12)})
	o, ok := a.Observation("A", mo(2))
	require.True(t, ok)
	assert.Equal(t, "11", o.Close.String())
	_, ok = a.Observation("A", mo(4))
	assert.False(t, ok)
	_, ok = a.Observation("B", mo(2))
	assert.False(t, ok)
}
