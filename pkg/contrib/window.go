// Package contrib reads commits for trailing time windows and folds them into
// per-author line-change statistics.
package contrib

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Default window names, in report order.
const (
	WindowLastYear       = "last_year"
	WindowLastSixMonths  = "last_six_months"
	WindowLastMonth      = "last_month"
	WindowLastTwoWeeks   = "last_two_weeks"
	daysLastYear         = 365
	daysLastSixMonths    = 180
	daysLastMonth        = 30
	daysLastTwoWeeks     = 14
	windowNameSeparator  = "_"
	windowLabelSeparator = " "
)

// Window is a named trailing date range ending today. A window of Days days
// covers the calendar dates [today-Days, today], both inclusive.
type Window struct {
	Name string `mapstructure:"name" yaml:"name"`
	Days int    `mapstructure:"days" yaml:"days"`
}

// DefaultWindows returns the built-in window table.
func DefaultWindows() []Window {
	return []Window{
		{Name: WindowLastYear, Days: daysLastYear},
		{Name: WindowLastSixMonths, Days: daysLastSixMonths},
		{Name: WindowLastMonth, Days: daysLastMonth},
		{Name: WindowLastTwoWeeks, Days: daysLastTwoWeeks},
	}
}

// Label is the human-readable window title, e.g. "Last Two Weeks".
func (w Window) Label() string {
	spaced := strings.ReplaceAll(w.Name, windowNameSeparator, windowLabelSeparator)

	return cases.Title(language.English).String(spaced)
}

// Span returns the first and last calendar day of the window.
func (w Window) Span(today time.Time) (start, end time.Time) {
	end = Day(today)

	return end.AddDate(0, 0, -w.Days), end
}

// Contains reports whether when falls on a calendar day inside the window.
func (w Window) Contains(today, when time.Time) bool {
	start, end := w.Span(today)
	day := Day(when)

	return !day.Before(start) && !day.After(end)
}

// NumDays is the number of calendar days covered, today included.
func (w Window) NumDays() int {
	return w.Days + 1
}

// Day truncates t to its calendar date as seen in t's own location. The
// result is midnight UTC so days from different zones compare by date only.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
