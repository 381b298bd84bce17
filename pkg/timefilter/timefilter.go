package timefilter

import (
	"fmt"
	"strings"
	"time"
)

// Filter is the shared creation-time filter vocabulary used by the booking,
// guest, and payment list endpoints.
type Filter string

const (
	All         Filter = "all"
	Today       Filter = "today"
	Week        Filter = "week"
	Month       Filter = "month"
	ThreeMonths Filter = "3months"
	SixMonths   Filter = "6months"
)

var validFilters = []Filter{All, Today, Week, Month, ThreeMonths, SixMonths}

// String implements fmt.Stringer.
func (f Filter) String() string {
	return string(f)
}

// IsValid reports whether the value is a known Filter.
func (f Filter) IsValid() bool {
	for _, candidate := range validFilters {
		if candidate == f {
			return true
		}
	}
	return false
}

// Parse converts raw query input into a Filter. Empty input means All.
func Parse(value string) (Filter, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return All, nil
	}
	for _, candidate := range validFilters {
		if string(candidate) == trimmed {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid time filter %q", value)
}

// CutoffFrom returns the inclusive lower bound for created_at under this
// filter, relative to now. The second return is false for All (no bound).
// Today truncates to local midnight; the remaining windows are trailing
// day spans, matching how the list views have always counted them.
func (f Filter) CutoffFrom(now time.Time) (time.Time, bool) {
	switch f {
	case Today:
		year, month, day := now.Date()
		return time.Date(year, month, day, 0, 0, 0, 0, now.Location()), true
	case Week:
		return now.AddDate(0, 0, -7), true
	case Month:
		return now.AddDate(0, 0, -30), true
	case ThreeMonths:
		return now.AddDate(0, 0, -90), true
	case SixMonths:
		return now.AddDate(0, 0, -180), true
	default:
		return time.Time{}, false
	}
}
