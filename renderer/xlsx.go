package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/trailing"
	"github.com/xuri/excelize/v2"
)

// summarySheet is the name of the first sheet of the workbook.
const summarySheet = "Summary"

// percentFormat is excelize's builtin "0.00%" number format.
const percentFormat = 10

// WriteWorkbook writes the results into an XLSX workbook: a summary sheet, and one sheet of
// monthly records per window.
func WriteWorkbook(w io.Writer, results []*trailing.PeriodResult) error {
	f := excelize.NewFile()
	defer f.Close()

	percent, err := f.NewStyle(&excelize.Style{NumFmt: percentFormat})
	if err != nil {
		return err
	}

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return err
	}
	header := []any{"Window", "Start", "End", "Requested Years", "Actual Years",
		"Cumulative Return", "Annualized Return", "Monthly Return", "Annualized Volatility", "Monthly Volatility", "Sharpe", "Beta",
		"Benchmark Cumulative Return", "Benchmark Annualized Return", "Benchmark Annualized Volatility", "Benchmark Sharpe"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range results {
		row := []any{WindowLabel(r.Window), r.Window.Start.String(), r.Window.End.String(), r.Window.RequestedYears, r.Window.ActualYears,
			r.Portfolio.CumulativeReturn, r.Portfolio.AnnualizedReturn, r.Portfolio.MonthlyReturn, r.Portfolio.AnnualizedVolatility, r.Portfolio.MonthlyVolatility, r.Portfolio.Sharpe, r.Beta,
			r.Benchmark.CumulativeReturn, r.Benchmark.AnnualizedReturn, r.Benchmark.AnnualizedVolatility, r.Benchmark.Sharpe}
		if err := setRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
	}
	if len(results) > 0 {
		last := len(results) + 1
		for _, cols := range [][2]int{{6, 10}, {13, 15}} {
			if err := setStyle(f, summarySheet, cols[0], 2, cols[1], last, percent); err != nil {
				return err
			}
		}
	}

	for _, r := range results {
		sheet := fmt.Sprintf("%s %s", WindowLabel(r.Window), r.Window.Start)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		header := []any{"Month", "Value", "Return", "Cumulative Return", "Benchmark Return", "Benchmark Cumulative Return", "Risk-Free Rate", "Excess Return", "Benchmark Excess Return"}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return err
		}
		for i, rec := range r.Records {
			row := []any{rec.Month.String(), rec.Value, rec.Return, rec.CumulativeReturn, rec.BenchmarkReturn, rec.BenchmarkCumulativeReturn, rec.RiskFreeRate, rec.ExcessReturn, rec.BenchmarkExcessReturn}
			if err := setRow(f, sheet, i+2, row); err != nil {
				return err
			}
		}
		if len(r.Records) > 0 {
			if err := setStyle(f, sheet, 3, 2, 9, len(r.Records)+1, percent); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func setStyle(f *excelize.File, sheet string, col1, row1, col2, row2, style int) error {
	from, err := excelize.CoordinatesToCellName(col1, row1)
	if err != nil {
		return err
	}
	to, err := excelize.CoordinatesToCellName(col2, row2)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}
