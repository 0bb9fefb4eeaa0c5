package trailing

import "fmt"

// AnalysisWindow is the trailing period a PeriodResult is computed over.
//
// Start is the base month: its close values the portfolio, and the first monthly return is the
// one of Start+1. End is included.
type AnalysisWindow struct {
	Start          Month   `json:"start"`
	End            Month   `json:"end"`
	RequestedYears int     `json:"requested_years"`
	ActualYears    float64 `json:"actual_years"`
}

// Months returns the number of monthly returns in the window.
func (w AnalysisWindow) Months() int { return w.End.Sub(w.Start) }

// Truncated reports whether the window is shorter than requested because data is missing.
func (w AnalysisWindow) Truncated() bool { return w.Months() < 12*w.RequestedYears }

// Contains reports whether m is a return month of the window, that is Start < m <= End.
func (w AnalysisWindow) Contains(m Month) bool { return m.After(w.Start) && !m.After(w.End) }

func (w AnalysisWindow) String() string {
	return fmt.Sprintf("%v..%v (%dy requested, %.3fy)", w.Start, w.End, w.RequestedYears, w.ActualYears)
}

// SelectWindow returns the window of 'years' years ending at 'end', clamped to start no earlier than 'start'.
//
// start and end are the common bounds of the aligned data. A window shorter than requested is
// valid and reported through ActualYears.
func SelectWindow(years int, start, end Month) (AnalysisWindow, error) {
	if years <= 0 {
		return AnalysisWindow{}, fmt.Errorf("invalid lookback %d: must be a positive number of years", years)
	}
	if start.After(end) {
		return AnalysisWindow{}, fmt.Errorf("invalid bounds: start %v is after end %v", start, end)
	}
	from := end.Add(-12 * years)
	if from.Before(start) {
		from = start
	}
	w := AnalysisWindow{
		Start:          from,
		End:            end,
		RequestedYears: years,
	}
	w.ActualYears = float64(w.Months()) / 12
	return w, nil
}
