// Package alphavantage retrieves monthly adjusted prices from the Alpha Vantage API.
package alphavantage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/trailing"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Alpha Vantage API endpoint.
const DefaultBaseURL = "https://www.alphavantage.co"

// DefaultRequestsPerMinute is the throughput of the free tier.
const DefaultRequestsPerMinute = 5

var (
	// ErrInvalidCall is returned when Alpha Vantage rejects the request, usually an unknown ticker.
	ErrInvalidCall = errors.New("invalid API call")
	// ErrRateLimited is returned when Alpha Vantage answers with a call frequency note.
	ErrRateLimited = errors.New("exceeds API call limit")
	// ErrUnexpected is returned when the response has no time series.
	ErrUnexpected = errors.New("unexpected response")
)

// json paths into the TIME_SERIES_MONTHLY_ADJUSTED response.
const (
	seriesPath      = `$["Monthly Adjusted Time Series"]`
	errorPath       = `$["Error Message"]`
	notePath        = `$["Note"]`
	informationPath = `$["Information"]`
	closePath       = `$["4. close"]`
	adjustedPath    = `$["5. adjusted close"]`
	volumePath      = `$["6. volume"]`
	dividendPath    = `$["7. dividend amount"]`
)

// Client queries the Alpha Vantage API under a rate limit.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client

	// Rate limited responses are retried MaxRetries times after RetryDelay.
	MaxRetries int
	RetryDelay time.Duration

	limiter *rate.Limiter
}

// New returns a Client allowing requestsPerMinute requests per minute, with a disk cache of the responses.
func New(apiKey string, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultRequestsPerMinute
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		HTTP:       trailing.NewCachingClient("", cacheable),
		MaxRetries: 2,
		RetryDelay: 70 * time.Second,
		limiter:    rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute),
	}
}

// cacheable rejects error payloads, Alpha Vantage reports them with a 200 status.
func cacheable(body []byte) bool {
	return !bytes.Contains(body, []byte(`"Error Message"`)) &&
		!bytes.Contains(body, []byte(`"Note"`)) &&
		!bytes.Contains(body, []byte(`"Information"`))
}

// MonthlyAdjusted returns the monthly observations of ticker, sorted by month.
func (c *Client) MonthlyAdjusted(ctx context.Context, ticker string) ([]trailing.PriceObservation, error) {
	q := url.Values{}
	q.Set("function", "TIME_SERIES_MONTHLY_ADJUSTED")
	q.Set("symbol", ticker)
	q.Set("apikey", c.APIKey)
	addr := c.BaseURL + "/query?" + q.Encode()

	for attempt := 0; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		body, err := trailing.Get(ctx, c.HTTP, addr)
		if err != nil {
			return nil, err
		}
		obs, err := parseMonthlyAdjusted(ticker, body)
		if !errors.Is(err, ErrRateLimited) || attempt >= c.MaxRetries {
			return obs, err
		}
		log.Warn().Str("ticker", ticker).Dur("delay", c.RetryDelay).Msg("rate limited, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.RetryDelay):
		}
	}
}

// get returns the value at path, unwrapping single element lists, and whether it exists.
func get(path string, v any) (any, bool) {
	val, err := jsonpath.Get(path, v)
	if err != nil || val == nil {
		return nil, false
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if list, ok := val.([]any); ok {
		if len(list) == 0 {
			return nil, false
		}
		val = list[0]
	}
	return val, true
}

// parseMonthlyAdjusted decodes a TIME_SERIES_MONTHLY_ADJUSTED payload.
func parseMonthlyAdjusted(ticker string, body []byte) ([]trailing.PriceObservation, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	if msg, ok := get(errorPath, v); ok {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCall, msg)
	}
	for _, path := range []string{notePath, informationPath} {
		if msg, ok := get(path, v); ok {
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, msg)
		}
	}
	raw, ok := get(seriesPath, v)
	if !ok {
		return nil, fmt.Errorf("%w: no monthly adjusted time series", ErrUnexpected)
	}
	series, ok := raw.(map[string]any)
	if !ok || len(series) == 0 {
		return nil, fmt.Errorf("%w: empty monthly adjusted time series", ErrUnexpected)
	}

	obs := make([]trailing.PriceObservation, 0, len(series))
	for date, entry := range series {
		m, err := trailing.ParseMonth(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpected, err)
		}
		o := trailing.PriceObservation{Ticker: ticker, Month: m}
		var errs []error
		o.Close, err = decimalAt(closePath, entry)
		errs = append(errs, err)
		o.AdjustedClose, err = decimalAt(adjustedPath, entry)
		errs = append(errs, err)
		o.DividendAmount, err = decimalAt(dividendPath, entry)
		errs = append(errs, err)
		volume, err := decimalAt(volumePath, entry)
		errs = append(errs, err)
		o.Volume = volume.IntPart()
		if err := errors.Join(errs...); err != nil {
			return nil, fmt.Errorf("%w: %s on %s: %v", ErrUnexpected, ticker, date, err)
		}
		obs = append(obs, o)
	}
	sort.Slice(obs, func(i, j int) bool { return obs[i].Month.Before(obs[j].Month) })
	return obs, nil
}

// decimalAt reads a decimal encoded as a string at path.
func decimalAt(path string, v any) (decimal.Decimal, error) {
	raw, ok := get(path, v)
	if !ok {
		return decimal.Zero, fmt.Errorf("missing %s", path)
	}
	s, ok := raw.(string)
	if !ok {
		return decimal.Zero, fmt.Errorf("%s is not a string: %v", path, raw)
	}
	return decimal.NewFromString(s)
}
