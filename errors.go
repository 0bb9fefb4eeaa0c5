package trailing

import (
	"errors"
	"fmt"
)

// ErrInvalidObservation is returned when price observations are inconsistent with the ticker they are filed under.
var ErrInvalidObservation = errors.New("invalid price observation")

// InsufficientDataError is returned when the positions share no common history.
type InsufficientDataError struct {
	Ticker     string // ticker without observations, if any
	Start, End Month  // earliest common start and latest common end, when computed
	Reason     string
}

func (e *InsufficientDataError) Error() string {
	switch {
	case e.Ticker != "":
		return fmt.Sprintf("insufficient data for %q: %s", e.Ticker, e.Reason)
	case !e.Start.IsZero():
		return fmt.Sprintf("insufficient data: %s (common start %v, common end %v)", e.Reason, e.Start, e.End)
	default:
		return "insufficient data: " + e.Reason
	}
}

// MissingPeriodDataError is returned when a security has no observation, or no return, for an in-window month.
type MissingPeriodDataError struct {
	Ticker string
	Month  Month
	Window AnalysisWindow
}

func (e *MissingPeriodDataError) Error() string {
	return fmt.Sprintf("missing data for %q on %v in window %v", e.Ticker, e.Month, e.Window)
}

// Series names used in MissingBenchmarkDataError.
const (
	BenchmarkSeriesName = "benchmark"
	RiskFreeSeriesName  = "risk-free"
)

// MissingBenchmarkDataError is returned when the benchmark or risk-free series has a gap inside the window.
type MissingBenchmarkDataError struct {
	Series string
	Month  Month
	Window AnalysisWindow
}

func (e *MissingBenchmarkDataError) Error() string {
	return fmt.Sprintf("missing %s data on %v in window %v", e.Series, e.Month, e.Window)
}

// DegenerateWindowError is returned when a window collapses to zero months.
type DegenerateWindowError struct {
	Window AnalysisWindow
}

func (e *DegenerateWindowError) Error() string {
	return fmt.Sprintf("degenerate window %v: no monthly return to analyze", e.Window)
}

// UndefinedStatisticError is returned when a statistic cannot be computed without dividing by zero.
type UndefinedStatisticError struct {
	Statistic    string
	Observations int
	Reason       string
}

func (e *UndefinedStatisticError) Error() string {
	return fmt.Sprintf("%s is undefined over %d monthly observation(s): %s", e.Statistic, e.Observations, e.Reason)
}
