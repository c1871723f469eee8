package grid

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// RowHeight is the pixel height of one hour row on the week grid.
	RowHeight = 48
	// DayWidth is the pixel width of one day column on the timeline.
	DayWidth = 40
	// WeekHeaderOffset is the pixel height of the week header and all-day rows.
	WeekHeaderOffset = 88
	// HoursPerDay is the number of hour rows on the week grid.
	HoursPerDay = 24
)

// ParseClock parses HH:mm into hour and minute.
func ParseClock(s string) (hour, minute int, ok bool) {
	h, m, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found || len(m) != 2 || len(h) == 0 || len(h) > 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// TimeToOffset converts HH:mm into a vertical pixel offset from midnight.
func TimeToOffset(s string) (float64, bool) {
	hour, minute, ok := ParseClock(s)
	if !ok {
		return 0, false
	}
	return float64(hour)*RowHeight + float64(minute)/60*RowHeight, true
}

// BlockHeight returns the pixel height of a block from start to end.
// A missing end, an unparsable time or an end at or before start
// yields the one-row default.
func BlockHeight(start, end string) float64 {
	startOffset, ok := TimeToOffset(start)
	if !ok {
		return RowHeight
	}
	endOffset, ok := TimeToOffset(end)
	if !ok || endOffset <= startOffset {
		return RowHeight
	}
	return endOffset - startOffset
}

// HourLabels returns "00:00" through "23:00".
func HourLabels() []string {
	labels := make([]string, HoursPerDay)
	for h := range labels {
		labels[h] = fmt.Sprintf("%02d:00", h)
	}
	return labels
}

// ValidSpan reports whether both dates parse and end is not before start.
func ValidSpan(start, end string) bool {
	s, ok := ParseDate(start)
	if !ok {
		return false
	}
	e, ok := ParseDate(end)
	if !ok {
		return false
	}
	return DayOffset(s, e) >= 0
}

// DurationDays returns the inclusive number of days from start to end.
func DurationDays(start, end string) (int, bool) {
	s, ok := ParseDate(start)
	if !ok {
		return 0, false
	}
	e, ok := ParseDate(end)
	if !ok {
		return 0, false
	}
	return DayOffset(s, e) + 1, true
}

// FormatSpan renders "{start} → {end} ({n} days)".
func FormatSpan(start, end string) string {
	n, ok := DurationDays(start, end)
	if !ok {
		return fmt.Sprintf("%s → %s", start, end)
	}
	unit := "days"
	if n == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%s → %s (%d %s)", start, end, n, unit)
}
