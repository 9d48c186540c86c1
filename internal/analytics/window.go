package analytics

import (
	"strings"
	"time"
)

// Recognized filter names. Anything else yields the unbounded window.
const (
	FilterToday     = "today"
	FilterYesterday = "yesterday"
	FilterWeek      = "week"
	FilterLastWeek  = "last week"
	FilterMonth     = "month"
	FilterLastMonth = "last month"
	FilterYear      = "year"
	FilterLastYear  = "last year"
)

// Window is a [Start, End) time range for a named filter.
type Window struct {
	Start time.Time
	End   time.Time
}

// ComputeWindow resolves a filter name to its window relative to now.
// Weeks start on Sunday. Month and year boundaries follow now's location.
func ComputeWindow(filter string, now time.Time) Window {
	y, m, d := now.Date()
	loc := now.Location()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

	switch filter {
	case FilterToday:
		return Window{Start: midnight, End: midnight.AddDate(0, 0, 1)}
	case FilterYesterday:
		return Window{Start: midnight.AddDate(0, 0, -1), End: midnight}
	case FilterWeek:
		start := midnight.AddDate(0, 0, -int(now.Weekday()))
		return Window{Start: start, End: start.AddDate(0, 0, 7)}
	case FilterLastWeek:
		end := midnight.AddDate(0, 0, -int(now.Weekday()))
		return Window{Start: end.AddDate(0, 0, -7), End: end}
	case FilterMonth:
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(0, 1, 0)}
	case FilterLastMonth:
		end := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return Window{Start: end.AddDate(0, -1, 0), End: end}
	case FilterYear:
		start := time.Date(y, 1, 1, 0, 0, 0, 0, loc)
		return Window{Start: start, End: start.AddDate(1, 0, 0)}
	case FilterLastYear:
		end := time.Date(y, 1, 1, 0, 0, 0, 0, loc)
		return Window{Start: end.AddDate(-1, 0, 0), End: end}
	default:
		// the window is half-open, so End must sit past now for an order
		// created at exactly now to land in the all-time bucket
		return Window{Start: time.Unix(0, 0).In(loc), End: now.Add(time.Nanosecond)}
	}
}

// daysIn returns the number of days in the month containing t.
func daysIn(t time.Time) int {
	y, m, _ := t.Date()
	first := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return first.AddDate(0, 1, -1).Day()
}

// capitalize upper-cases the first letter of a filter name for bucket labels.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
