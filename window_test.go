package trailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectWindow(t *testing.T) {
	start, end := MustParseMonth("2020-01"), MustParseMonth("2022-08")
	tests := []struct {
		years     int
		wantStart Month
		wantYears float64
		truncated bool
	}{
		{1, MustParseMonth("2021-08"), 1, false},
		{2, MustParseMonth("2020-08"), 2, false},
		{3, start, 31.0 / 12, true},
		{5, start, 31.0 / 12, true},
	}
	for _, tt := range tests {
		w, err := SelectWindow(tt.years, start, end)
		require.NoError(t, err)
		assert.Equal(t, tt.wantStart, w.Start, "SelectWindow(%d).Start", tt.years)
		assert.Equal(t, end, w.End, "SelectWindow(%d).End", tt.years)
		assert.InDelta(t, tt.wantYears, w.ActualYears, 1e-12, "SelectWindow(%d).ActualYears", tt.years)
		assert.Equal(t, tt.truncated, w.Truncated(), "SelectWindow(%d).Truncated()", tt.years)
		assert.LessOrEqual(t, w.Months(), 12*tt.years)
	}
}

func TestSelectWindowFiveYearsOnShortHistory(t *testing.T) {
	w, err := SelectWindow(5, MustParseMonth("2020-01"), MustParseMonth("2022-08"))
	require.NoError(t, err)
	assert.InDelta(t, 2.583, w.ActualYears, 1e-3)
	assert.Equal(t, MustParseMonth("2020-01"), w.Start)
}

func TestSelectWindowErrors(t *testing.T) {
	_, err := SelectWindow(0, mo(1), mo(12))
	assert.Error(t, err)
	_, err = SelectWindow(-1, mo(1), mo(12))
	assert.Error(t, err)
	_, err = SelectWindow(1, mo(12), mo(1))
	assert.Error(t, err)
}

func TestWindowContains(t *testing.T) {
	w := AnalysisWindow{Start: mo(1), End: mo(4)}
	assert.False(t, w.Contains(mo(1)), "start month has no return")
	assert.True(t, w.Contains(mo(2)))
	assert.True(t, w.Contains(mo(4)))
	assert.False(t, w.Contains(mo(5)))
}
