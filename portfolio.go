package trailing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Position is a holding of a constant Quantity of a security, identified by its ticker.
type Position struct {
	Ticker   string   `json:"ticker"`
	Quantity Quantity `json:"quantity"`
}

// Portfolio is an ordered list of positions with unique tickers.
//
// Quantities are constant over the whole history: there is no rebalancing.
type Portfolio []Position

// Tickers returns the tickers of the portfolio in their declaration order.
func (pf Portfolio) Tickers() []string {
	tickers := make([]string, 0, len(pf))
	for _, p := range pf {
		tickers = append(tickers, p.Ticker)
	}
	return tickers
}

// Quantity returns the quantity held for ticker and true, or false if the ticker is not in the portfolio.
func (pf Portfolio) Quantity(ticker string) (Quantity, bool) {
	i := slices.IndexFunc(pf, func(p Position) bool { return p.Ticker == ticker })
	if i < 0 {
		return Quantity{}, false
	}
	return pf[i].Quantity, true
}

// Validate checks that the portfolio is not empty, that tickers are unique and non empty,
// and that quantities are not negative. All failures are reported.
func (pf Portfolio) Validate() error {
	if len(pf) == 0 {
		return errors.New("empty portfolio")
	}
	var errs []error
	seen := make(map[string]bool)
	for i, p := range pf {
		if p.Ticker == "" {
			errs = append(errs, fmt.Errorf("position %d: missing ticker", i+1))
			continue
		}
		if seen[p.Ticker] {
			errs = append(errs, fmt.Errorf("position %d: duplicate ticker %q", i+1, p.Ticker))
		}
		seen[p.Ticker] = true
		if p.Quantity.IsNegative() {
			errs = append(errs, fmt.Errorf("position %d: negative quantity %v for %q", i+1, p.Quantity, p.Ticker))
		}
	}
	return errors.Join(errs...)
}

// portfolioRow is a raw row of a portfolio definition file.
type portfolioRow struct {
	Ticker   string `validate:"required,max=12,ticker"`
	Quantity string `validate:"required,numeric"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// tickers are symbols like "BRK.B" or "RDS-A": printable and without spaces.
	_ = v.RegisterValidation("ticker", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), func(r rune) bool {
			return unicode.IsSpace(r) || !unicode.IsPrint(r)
		})
	})
	return v
}

// header names accepted for the portfolio definition columns.
var (
	tickerColumns   = []string{"ticker", "tck", "symbol"}
	quantityColumns = []string{"quantity", "qty"}
)

// DecodePortfolio reads a portfolio definition in CSV format.
//
// The first row is a header that must name a ticker column (ticker or tck) and a quantity
// column (quantity or qty). Other columns are ignored. Tickers are upper-cased.
func DecodePortfolio(r io.Reader) (Portfolio, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read portfolio header: %w", err)
	}
	tIdx, qIdx := -1, -1
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		switch {
		case slices.Contains(tickerColumns, h):
			tIdx = i
		case slices.Contains(quantityColumns, h):
			qIdx = i
		}
	}
	if tIdx < 0 || qIdx < 0 {
		return nil, fmt.Errorf("portfolio header %q must name a ticker and a quantity column", header)
	}

	var pf Portfolio
	var errs []error
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read portfolio: %w", err)
		}
		row := portfolioRow{
			Ticker:   strings.ToUpper(strings.TrimSpace(rec[tIdx])),
			Quantity: strings.TrimSpace(rec[qIdx]),
		}
		if err := validate.Struct(row); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					errs = append(errs, fmt.Errorf("line %d: invalid %s %q (%s)", line, strings.ToLower(fe.Field()), fe.Value(), fe.Tag()))
				}
				continue
			}
			return nil, err
		}
		qty, err := ParseQuantity(row.Quantity)
		if err != nil {
			errs = append(errs, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		pf = append(pf, Position{Ticker: row.Ticker, Quantity: qty})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if err := pf.Validate(); err != nil {
		return nil, err
	}
	return pf, nil
}

// EncodePortfolio writes the portfolio in the CSV format read by DecodePortfolio.
func EncodePortfolio(w io.Writer, pf Portfolio) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ticker", "quantity"}); err != nil {
		return err
	}
	for _, p := range pf {
		if err := cw.Write([]string{p.Ticker, p.Quantity.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
