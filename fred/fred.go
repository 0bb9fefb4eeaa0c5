// Package fred retrieves the risk-free rate from the FRED economic data API.
package fred

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/etnz/trailing"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the FRED API endpoint.
const DefaultBaseURL = "https://api.stlouisfed.org"

// DefaultSeries is the 1-year treasury constant maturity rate, an annualized percentage.
const DefaultSeries = "DGS1"

// missingValue is how FRED reports a day without observation, like a bank holiday.
const missingValue = "."

// Observation is a daily value of a series, as returned by FRED.
type Observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// Client queries the FRED API.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client with a disk cache of the responses.
func New(apiKey string) *Client {
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HTTP:    trailing.NewCachingClient("", nil),
	}
}

// Observations returns the raw observations of a series.
func (c *Client) Observations(ctx context.Context, seriesID string) ([]Observation, error) {
	q := url.Values{}
	q.Set("series_id", seriesID)
	q.Set("api_key", c.APIKey)
	q.Set("file_type", "json")
	addr := c.BaseURL + "/fred/series/observations?" + q.Encode()

	var content struct {
		ErrorMessage string        `json:"error_message"`
		Observations []Observation `json:"observations"`
	}
	if err := trailing.GetJSON(ctx, c.HTTP, addr, &content); err != nil {
		return nil, fmt.Errorf("cannot fetch FRED series %q: %w", seriesID, err)
	}
	if content.ErrorMessage != "" {
		return nil, fmt.Errorf("cannot fetch FRED series %q: %s", seriesID, content.ErrorMessage)
	}
	log.Info().Str("series", seriesID).Int("observations", len(content.Observations)).Msg("fetched")
	return content.Observations, nil
}

// RiskFree returns the monthly risk-free rate derived from an annualized percentage series like DGS1.
func (c *Client) RiskFree(ctx context.Context, seriesID string) (*trailing.RiskFreeSeries, error) {
	obs, err := c.Observations(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	return MonthlyRates(obs)
}

// MonthlyRates converts daily annualized percentages into monthly fractional rates.
//
// Missing values are skipped. The daily values of a month are averaged, and the mean is
// converted from an annual percentage into a monthly fraction: mean / 100 / 12.
func MonthlyRates(obs []Observation) (*trailing.RiskFreeSeries, error) {
	type acc struct {
		sum float64
		n   int
	}
	months := make(map[trailing.Month]*acc)
	for _, o := range obs {
		v := strings.TrimSpace(o.Value)
		if v == missingValue || v == "" {
			continue
		}
		m, err := trailing.ParseMonth(o.Date)
		if err != nil {
			return nil, err
		}
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q on %s: %w", o.Value, o.Date, err)
		}
		a, ok := months[m]
		if !ok {
			a = new(acc)
			months[m] = a
		}
		a.sum += rate
		a.n++
	}
	rates := new(trailing.RiskFreeSeries)
	for m, a := range months {
		rates.Append(m, a.sum/float64(a.n)/100/12)
	}
	return rates, nil
}
