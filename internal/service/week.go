package service

import (
	"fmt"
	"time"
)

// WeekRange is a Monday..Sunday span. Start and End are date-only values
// (midnight UTC).
type WeekRange struct {
	Start time.Time
	End   time.Time
}

// WeekOf returns the week containing base, starting on Monday.
func WeekOf(base time.Time) WeekRange {
	base = dateOnly(base)
	// time.Weekday has Sunday = 0, we want Monday = 0
	offset := (int(base.Weekday()) + 6) % 7
	start := base.AddDate(0, 0, -offset)
	return WeekRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// Offset returns the week n weeks after w (negative n goes back).
func (w WeekRange) Offset(n int) WeekRange {
	start := w.Start.AddDate(0, 0, 7*n)
	return WeekRange{Start: start, End: start.AddDate(0, 0, 6)}
}

// OffsetFrom returns how many weeks separate w from base, negative when w
// is earlier. Both starts are midnight UTC so the division is exact.
func (w WeekRange) OffsetFrom(base WeekRange) int {
	return int(w.Start.Sub(base.Start).Hours() / (24 * 7))
}

// Days lists the seven dates of the week in order.
func (w WeekRange) Days() []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = w.Start.AddDate(0, 0, i)
	}
	return days
}

// Contains reports whether d (any time of day) falls inside the week.
func (w WeekRange) Contains(d time.Time) bool {
	d = dateOnly(d)
	return !d.Before(w.Start) && !d.After(w.End)
}

// IsCurrent reports whether today falls inside the week.
func (w WeekRange) IsCurrent(now time.Time) bool {
	return w.Contains(now)
}

// FormatDisplay renders "02 - 08 Jun 2025", collapsing the month when the
// whole week is inside one.
func (w WeekRange) FormatDisplay() string {
	if w.Start.Month() == w.End.Month() {
		return fmt.Sprintf("%s - %s", w.Start.Format("02"), w.End.Format("02 Jan 2006"))
	}
	return fmt.Sprintf("%s - %s", w.Start.Format("02 Jan"), w.End.Format("02 Jan 2006"))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
