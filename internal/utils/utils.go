package utils

import (
	"fmt"
	"time"
)

// WeekStart returns Monday 00:00 UTC of the week containing t.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	daysSinceMonday := int(t.Weekday()-time.Monday+7) % 7
	day := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
}

// QuarterOf returns the calendar quarter label for t, e.g. "2026-Q1".
func QuarterOf(t time.Time) string {
	quarter := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", t.Year(), quarter)
}

// QuarterBounds returns the [start, end) window of the calendar quarter
// containing t, in UTC.
func QuarterBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	quarter := (int(t.Month()) - 1) / 3
	start := time.Date(t.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 3, 0)
}

// MaskUsername masks a username for logging (first and last rune kept).
func MaskUsername(username string) string {
	runes := []rune(username)
	if len(runes) <= 2 {
		return "***"
	}
	return string(runes[0]) + "***" + string(runes[len(runes)-1])
}
