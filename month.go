package trailing

import (
	"encoding"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MonthFormat is the format used to represent months as strings.
const MonthFormat = "2006-01" // write format

const readMonthFormat = "2006-1" // Permissive read format (allows single-digit month).

// Month represents a calendar month, with no day component.
type Month struct {
	y int        // year
	m time.Month // month
}

// NewMonth returns a normalized Month for the given year and month.
//
// Out of range months are normalized, NewMonth(2024, 13) is January 2025.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{t.Year(), t.Month()}
}

// MonthOf returns the month containing t.
func MonthOf(t time.Time) Month { return NewMonth(t.Year(), t.Month()) }

// Year returns the year of the month.
func (m Month) Year() int { return m.y }

// Month returns the month of the year.
func (m Month) Month() time.Month { return m.m }

// IsZero returns true if m is the zero value.
func (m Month) IsZero() bool { return m.y == 0 && m.m == 0 }

// String formats the month as "2006-01".
func (m Month) String() string { return m.time().Format(MonthFormat) }

// time returns the first day of the month at midnight UTC.
func (m Month) time() time.Time { return time.Date(m.y, m.m, 1, 0, 0, 0, 0, time.UTC) }

// index returns a monotonic month counter, convenient for arithmetic.
func (m Month) index() int { return m.y*12 + int(m.m) - 1 }

// Add returns the month n months after m (before if n is negative).
func (m Month) Add(n int) Month { return NewMonth(m.y, m.m+time.Month(n)) }

// Sub returns the number of whole months from x to m.
func (m Month) Sub(x Month) int { return m.index() - x.index() }

// Before reports whether m is before x.
func (m Month) Before(x Month) bool { return m.index() < x.index() }

// After reports whether m is after x.
func (m Month) After(x Month) bool { return m.index() > x.index() }

// Compare returns -1, 0 or +1 depending on whether m is before, equal or after x.
func (m Month) Compare(x Month) int {
	switch {
	case m.Before(x):
		return -1
	case m.After(x):
		return 1
	default:
		return 0
	}
}

// ParseMonth parses a Month from a string. It is lenient and accepts "2025-07", "2025-7"
// and full dates like "2025-07-31" (market data timestamps), in which case the day is dropped.
func ParseMonth(str string) (Month, error) {
	str = strings.TrimSpace(str)
	if t, err := time.Parse(readMonthFormat, str); err == nil {
		return MonthOf(t), nil
	}
	if t, err := time.Parse("2006-1-2", str); err == nil {
		return MonthOf(t), nil
	}
	return Month{}, fmt.Errorf("invalid month %q want format %q", str, MonthFormat)
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(str string) Month {
	m, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return m
}

// MarshalText implements encoding.TextMarshaler.
func (m Month) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Month) UnmarshalText(text []byte) error {
	v, err := ParseMonth(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// UnmarshalJSON implements the json specific way to unmarshal a month from a json string.
func (m *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	return m.UnmarshalText([]byte(str))
}

func (m Month) MarshalJSON() ([]byte, error) {
	str := m.String()
	return json.Marshal(&str)
}

// check that a Month pointer is a valid marshaller/unmarshaller type.
var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)
var _ encoding.TextMarshaler = (*Month)(nil)
var _ encoding.TextUnmarshaler = (*Month)(nil)
