package trailing

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultLookbacks are the trailing windows, in years, analyzed by default.
var DefaultLookbacks = []int{1, 2, 3, 5}

// Windows selects the analysis window of every lookback, in order.
//
// Lookbacks must be positive and strictly ascending. Selection stops after the first truncated
// window: a longer lookback would be clamped to the same start and describe the same period.
func Windows(lookbacks []int, data *Aligned) ([]AnalysisWindow, error) {
	if len(lookbacks) == 0 {
		return nil, fmt.Errorf("no lookback to analyze")
	}
	var windows []AnalysisWindow
	for i, years := range lookbacks {
		if years <= 0 {
			return nil, fmt.Errorf("invalid lookback %d: must be a positive number of years", years)
		}
		if i > 0 && years <= lookbacks[i-1] {
			return nil, fmt.Errorf("invalid lookbacks %v: must be strictly ascending", lookbacks)
		}
	}
	for _, years := range lookbacks {
		w, err := SelectWindow(years, data.Start, data.End)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
		if w.Truncated() {
			log.Debug().Int("years", years).Float64("actual_years", w.ActualYears).Msg("window truncated, skipping longer lookbacks")
			break
		}
	}
	return windows, nil
}

// Analyze computes the performance of the portfolio over every trailing window of lookbacks.
//
// Windows are computed concurrently, they only share read-only inputs. The results are returned
// in lookback order. A failure only affects its own window: the results of every other window
// are returned, with the errors of the failed ones joined.
func Analyze(ctx context.Context, pf Portfolio, data *Aligned, benchmark *BenchmarkSeries, riskFree *RiskFreeSeries, lookbacks []int) ([]*PeriodResult, error) {
	if err := pf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid portfolio: %w", err)
	}
	windows, err := Windows(lookbacks, data)
	if err != nil {
		return nil, err
	}

	results := make([]*PeriodResult, len(windows))
	errs := make([]error, len(windows))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, w := range windows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			log.Debug().Stringer("window", w).Msg("computing window")
			results[i], errs[i] = Compute(pf, data, w, benchmark, riskFree)
			return nil
		})
	}
	_ = g.Wait()

	var failures []error
	succeeded := make([]*PeriodResult, 0, len(windows))
	for i, err := range errs {
		if err != nil {
			failures = append(failures, fmt.Errorf("cannot analyze %d year window: %w", windows[i].RequestedYears, err))
			continue
		}
		succeeded = append(succeeded, results[i])
	}
	return succeeded, errors.Join(failures...)
}
