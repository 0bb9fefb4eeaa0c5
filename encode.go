package trailing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// pricesHeader is the header of a price history file.
var pricesHeader = []string{"ticker", "month", "close", "adjusted_close", "volume", "dividend_amount"}

// EncodePrices writes price observations in CSV format, with a header row.
func EncodePrices(w io.Writer, obs []PriceObservation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(pricesHeader); err != nil {
		return err
	}
	for _, o := range obs {
		err := cw.Write([]string{
			o.Ticker,
			o.Month.String(),
			o.Close.String(),
			o.AdjustedClose.String(),
			strconv.FormatInt(o.Volume, 10),
			o.DividendAmount.String(),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodePrices reads price observations written by EncodePrices.
func DecodePrices(r io.Reader) ([]PriceObservation, error) {
	rows, err := readCSV(r, pricesHeader)
	if err != nil {
		return nil, err
	}
	obs := make([]PriceObservation, 0, len(rows))
	for i, row := range rows {
		var o PriceObservation
		var errs []error
		o.Ticker = row[0]
		o.Month, err = ParseMonth(row[1])
		errs = append(errs, err)
		o.Close, err = decimal.NewFromString(row[2])
		errs = append(errs, err)
		o.AdjustedClose, err = decimal.NewFromString(row[3])
		errs = append(errs, err)
		o.Volume, err = strconv.ParseInt(row[4], 10, 64)
		errs = append(errs, err)
		o.DividendAmount, err = decimal.NewFromString(row[5])
		errs = append(errs, err)
		if err := errors.Join(errs...); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		obs = append(obs, o)
	}
	return obs, nil
}

// EncodeSeries writes a month indexed series in CSV format, the header is "month" and column.
func EncodeSeries(w io.Writer, column string, h *History[float64]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"month", column}); err != nil {
		return err
	}
	for m, v := range h.Values() {
		if err := cw.Write([]string{m.String(), strconv.FormatFloat(v, 'g', -1, 64)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeSeries reads a series written by EncodeSeries with the same column name.
func DecodeSeries(r io.Reader, column string) (*History[float64], error) {
	rows, err := readCSV(r, []string{"month", column})
	if err != nil {
		return nil, err
	}
	h := new(History[float64])
	for i, row := range rows {
		m, err := ParseMonth(row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		v, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		h.Append(m, v)
	}
	return h, nil
}

// readCSV reads all the rows of a CSV file after checking its header.
func readCSV(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	got, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header %q", header)
	}
	if err != nil {
		return nil, err
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(got[i]), h) {
			return nil, fmt.Errorf("invalid header %q want %q", got, header)
		}
	}
	return cr.ReadAll()
}
