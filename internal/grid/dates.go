// Package grid holds the pure date and time arithmetic shared by the
// month, week and timeline layouts.
package grid

import (
	"iter"
	"strings"
	"time"
)

const (
	// DateLayout is the YYYY-MM-DD form used for task dates.
	DateLayout = "2006-01-02"
	// TimeLayout is the HH:mm form used for task times.
	TimeLayout = "15:04"
)

// Clock returns the current time. Layouts take one so "today" is injectable.
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time { return time.Now() }

// ParseDate parses a YYYY-MM-DD string as local midnight.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Midnight zeroes the time of day, keeping t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsToday reports whether date falls on the same calendar date as now.
func IsToday(date, now time.Time) bool {
	return SameDay(date, now)
}

// MonthFromIndex converts a zero-based month index into a time.Month.
func MonthFromIndex(i int) time.Month {
	return time.Month(i + 1)
}

// DaysInMonth yields every date of the month in ascending order.
// month is a time.Month (January == 1); each call to the sequence restarts it.
func DaysInMonth(year int, month time.Month) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for d := time.Date(year, month, 1, 0, 0, 0, 0, time.Local); d.Month() == month; d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

// StartOfWeek returns the Monday-first week containing date, times zeroed.
func StartOfWeek(date time.Time) [7]time.Time {
	day := Midnight(date)
	offset := int(day.Weekday()) - 1
	if day.Weekday() == time.Sunday {
		offset = 6
	}
	monday := day.AddDate(0, 0, -offset)

	var week [7]time.Time
	for i := range week {
		week[i] = monday.AddDate(0, 0, i)
	}
	return week
}

// Range returns n consecutive dates beginning at start's calendar date.
func Range(start time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	first := Midnight(start)
	dates := make([]time.Time, n)
	for i := range dates {
		dates[i] = first.AddDate(0, 0, i)
	}
	return dates
}

// dayNumber counts calendar days since the Unix epoch, ignoring location and DST.
func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

// DayOffset returns the whole number of days from a to b; negative when b is earlier.
func DayOffset(a, b time.Time) int {
	return int(dayNumber(b) - dayNumber(a))
}

// IndexOf returns the position of date within dates, or -1 when it is
// absent or unparsable. Matching is exact by calendar date.
func IndexOf(dates []time.Time, date string) int {
	t, ok := ParseDate(date)
	if !ok {
		return -1
	}
	for i, d := range dates {
		if SameDay(d, t) {
			return i
		}
	}
	return -1
}
