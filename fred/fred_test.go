package fred

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/trailing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyRates(t *testing.T) {
	obs := []Observation{
		{"2020-01-02", "1.56"},
		{"2020-01-03", "1.54"},
		{"2020-01-20", "."},
		{"2020-02-03", "1.20"},
	}
	got, err := MonthlyRates(obs)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	jan, ok := got.Get(trailing.MustParseMonth("2020-01"))
	require.True(t, ok)
	assert.InDelta(t, 1.55/100/12, jan, 1e-12)

	feb, _ := got.Get(trailing.MustParseMonth("2020-02"))
	assert.InDelta(t, 0.001, feb, 1e-12)

	_, err = MonthlyRates([]Observation{{"2020-01-02", "abc"}})
	assert.Error(t, err)
	_, err = MonthlyRates([]Observation{{"yesterday", "1"}})
	assert.Error(t, err)
}

func TestRiskFree(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fred/series/observations", r.URL.Path)
		q := r.URL.Query()
		if q.Get("series_id") != DefaultSeries {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error_code":400,"error_message":"Bad Request. The series does not exist."}`)
			return
		}
		assert.Equal(t, "json", q.Get("file_type"))
		fmt.Fprint(w, `{"observations":[
			{"realtime_start":"2024-01-01","date":"2023-12-29","value":"4.79"},
			{"realtime_start":"2024-01-01","date":"2024-01-01","value":"."},
			{"realtime_start":"2024-01-01","date":"2024-01-02","value":"4.80"}
		]}`)
	}))
	defer srv.Close()

	c := New("demo")
	c.BaseURL = srv.URL
	c.HTTP = srv.Client()

	rates, err := c.RiskFree(context.Background(), DefaultSeries)
	require.NoError(t, err)
	assert.Equal(t, 2, rates.Len())
	jan, _ := rates.Get(trailing.MustParseMonth("2024-01"))
	assert.InDelta(t, 0.004, jan, 1e-12)

	_, err = c.RiskFree(context.Background(), "NOPE")
	assert.Error(t, err)
}
