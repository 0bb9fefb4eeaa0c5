package trailing

import (
	"iter"
	"slices"
)

// History stores a chronological series of values, each associated with a specific month.
// It ensures that months are unique and the series is always sorted.
//
// A History is the explicit stand-in for a month-indexed column: joins are merges by month,
// group-bys are folds by month.
type History[T float32 | float64] struct {
	months []Month
	values []T
}

// BenchmarkSeries maps a month to the fractional monthly return of a reference index.
type BenchmarkSeries = History[float64]

// RiskFreeSeries maps a month to the fractional monthly risk-free rate.
type RiskFreeSeries = History[float64]

// search returns the index where on is or would be inserted, and whether it was found.
func (h *History[T]) search(on Month) (int, bool) {
	return slices.BinarySearchFunc(h.months, on, Month.Compare)
}

// Append adds a point to the history.
//
// Existing value at that month is overwritten.
func (h *History[T]) Append(on Month, v T) *History[T] {
	i, found := h.search(on)
	if found {
		// We choose to replace, because it will give higher priority to the last data
		h.values[i] = v
		return h
	}
	h.months = slices.Insert(h.months, i, on)
	h.values = slices.Insert(h.values, i, v)
	return h
}

// Get returns the value at 'on' and true or zero value and false.
func (h *History[T]) Get(on Month) (T, bool) {
	i, found := h.search(on)
	if !found {
		var zero T
		return zero, false
	}
	return h.values[i], true
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.months) }

// First returns the earliest month and value in the history.
// If the history is empty, it returns zero values.
func (h *History[T]) First() (on Month, value T) {
	if len(h.months) == 0 {
		return Month{}, value
	}
	return h.months[0], h.values[0]
}

// Latest returns the latest month and value in the history.
// If the history is empty, it returns zero values.
func (h *History[T]) Latest() (on Month, value T) {
	last := len(h.months) - 1
	if last < 0 {
		return Month{}, value
	}
	return h.months[last], h.values[last]
}

// Months returns a copy of the months of the history, in chronological order.
func (h *History[T]) Months() []Month { return slices.Clone(h.months) }

// Values returns an iterator over all month/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Month, T] {
	return func(yield func(Month, T) bool) {
		for i, on := range h.months {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Between returns a new History with the points from 'from' to 'to', both included.
func (h *History[T]) Between(from, to Month) *History[T] {
	lo, _ := h.search(from)
	hi, found := h.search(to)
	if found {
		hi++
	}
	res := new(History[T])
	if lo >= hi {
		return res
	}
	res.months = slices.Clone(h.months[lo:hi])
	res.values = slices.Clone(h.values[lo:hi])
	return res
}
