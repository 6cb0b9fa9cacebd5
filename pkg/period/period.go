package period

import (
	"fmt"
	"time"
)

const (
	TypeWeek  = "week"
	TypeMonth = "month"

	// DateLayout is the canonical day format used across the database
	// and the bot commands.
	DateLayout = "2006-01-02"
)

// Window is a contiguous date range with a stable key, either an ISO week
// ("2026-W05", Monday through Sunday) or a calendar month ("2026-03").
type Window struct {
	Type  string
	Key   string
	Start time.Time
	End   time.Time
}

// Week returns the ISO week window containing t. The key uses the ISO year,
// so dates around New Year may carry a key of the adjacent year - that is
// correct per ISO 8601 and must not be "fixed".
func Week(t time.Time) Window {
	t = truncate(t)

	// time.Weekday is Sunday-based; shift so Monday opens the week.
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	start := t.AddDate(0, 0, 1-offset)

	year, week := t.ISOWeek()

	return Window{
		Type:  TypeWeek,
		Key:   fmt.Sprintf("%04d-W%02d", year, week),
		Start: start,
		End:   start.AddDate(0, 0, 6),
	}
}

// Month returns the calendar month window containing t.
func Month(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)

	return Window{
		Type:  TypeMonth,
		Key:   fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month())),
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}
}

// Days returns every date in the window, start and end inclusive.
// Windows are bounded (7 days for weeks, at most 31 for months).
func (w Window) Days() []time.Time {
	var days []time.Time
	for cursor := w.Start; !cursor.After(w.End); cursor = cursor.AddDate(0, 0, 1) {
		days = append(days, cursor)
	}
	return days
}

// Contains reports whether the given date falls inside the window.
func (w Window) Contains(t time.Time) bool {
	t = truncate(t)
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("%s [%s, %s]", w.Key, DateKey(w.Start), DateKey(w.End))
}

// ParseDate parses a canonical "YYYY-MM-DD" day string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// DateKey formats a time as a canonical day string.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current date truncated to day granularity.
func Today() time.Time {
	return truncate(time.Now())
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
