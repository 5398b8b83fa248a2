package jackpot

import (
	"time"
)

// Drawings happen every Friday at 18:00 in the pool's configured zone.
const (
	DrawingWeekday = time.Friday
	DrawingHour    = 18
)

// NextDrawing returns the next Friday 18:00 in loc, strictly after now. If
// now is exactly the drawing instant, the answer is the following week's
// drawing.
func NextDrawing(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	daysUntilFriday := int(DrawingWeekday - local.Weekday())
	if daysUntilFriday < 0 {
		daysUntilFriday += 7
	}
	candidate := time.Date(local.Year(), local.Month(), local.Day(), DrawingHour, 0, 0, 0, loc)
	candidate = candidate.AddDate(0, 0, daysUntilFriday)
	if !candidate.After(local) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

// Countdown is the non-negative decomposition of time remaining to a drawing
type Countdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// CountdownTo decomposes drawingTime - now into days/hours/minutes/seconds.
// Returns all zeros when the drawing time has already passed.
func CountdownTo(now, drawingTime time.Time) Countdown {
	remaining := drawingTime.Sub(now)
	if remaining <= 0 {
		return Countdown{}
	}
	return Countdown{
		Days:    int(remaining / (24 * time.Hour)),
		Hours:   int(remaining/time.Hour) % 24,
		Minutes: int(remaining/time.Minute) % 60,
		Seconds: int(remaining/time.Second) % 60,
	}
}
