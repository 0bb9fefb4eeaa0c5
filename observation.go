package trailing

import (
	"github.com/shopspring/decimal"
)

// PriceObservation is the end of month market data of a security.
type PriceObservation struct {
	Ticker         string          `json:"ticker"`
	Month          Month           `json:"month"`
	Close          decimal.Decimal `json:"close"`
	AdjustedClose  decimal.Decimal `json:"adjusted_close"`
	Volume         int64           `json:"volume"`
	DividendAmount decimal.Decimal `json:"dividend_amount"`
}

// Prices holds the price observations of several securities, one sequence per ticker.
type Prices map[string][]PriceObservation
