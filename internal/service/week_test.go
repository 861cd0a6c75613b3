package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekOfStartsOnMonday(t *testing.T) {
	// 2025-06-02 is a Monday; every day of that week must map to it
	monday := date(2025, time.June, 2)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		w := WeekOf(day)
		assert.Equal(t, monday, w.Start, "week of %s", day.Format("2006-01-02"))
		assert.Equal(t, date(2025, time.June, 8), w.End)
	}
}

func TestWeekOfMonday(t *testing.T) {
	w := WeekOf(date(2025, time.June, 2))
	assert.Equal(t, time.Monday, w.Start.Weekday())
	assert.Equal(t, time.Sunday, w.End.Weekday())
}

func TestWeekOfIgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2025, time.June, 4, 23, 59, 59, 0, time.UTC)
	w := WeekOf(late)
	assert.Equal(t, date(2025, time.June, 2), w.Start)
}

func TestWeekOffsetNavigation(t *testing.T) {
	w := WeekOf(date(2025, time.June, 4))

	prev := w.Offset(-1)
	next := w.Offset(1)

	assert.Equal(t, date(2025, time.May, 26), prev.Start)
	assert.Equal(t, date(2025, time.June, 1), prev.End)
	assert.Equal(t, date(2025, time.June, 9), next.Start)
	assert.Equal(t, date(2025, time.June, 15), next.End)

	// back and forth returns the same week
	assert.Equal(t, w, w.Offset(3).Offset(-3))
	// no gaps between adjacent weeks
	assert.Equal(t, w.End.AddDate(0, 0, 1), next.Start)
	assert.Equal(t, prev.End.AddDate(0, 0, 1), w.Start)
}

func TestWeekOffsetAcrossYearBoundary(t *testing.T) {
	// week of 2024-12-30 spans into 2025
	w := WeekOf(date(2025, time.January, 1))
	assert.Equal(t, date(2024, time.December, 30), w.Start)
	assert.Equal(t, date(2025, time.January, 5), w.End)
}

func TestWeekOffsetFrom(t *testing.T) {
	base := WeekOf(date(2025, time.June, 4))

	assert.Equal(t, 0, base.OffsetFrom(base))
	assert.Equal(t, 1, base.Offset(1).OffsetFrom(base))
	assert.Equal(t, -22, WeekOf(date(2025, time.January, 1)).OffsetFrom(base))

	// Offset and OffsetFrom are inverses
	for n := -60; n <= 60; n += 7 {
		assert.Equal(t, n, base.Offset(n).OffsetFrom(base), "offset %d", n)
	}
}

func TestWeekDays(t *testing.T) {
	w := WeekOf(date(2025, time.June, 2))
	days := w.Days()

	require.Len(t, days, 7)
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, time.Sunday, days[6].Weekday())
	for i := 1; i < 7; i++ {
		assert.Equal(t, days[i-1].AddDate(0, 0, 1), days[i])
	}
}

func TestWeekContains(t *testing.T) {
	w := WeekOf(date(2025, time.June, 2))

	assert.True(t, w.Contains(date(2025, time.June, 2)))
	assert.True(t, w.Contains(date(2025, time.June, 8)))
	assert.True(t, w.Contains(time.Date(2025, time.June, 8, 18, 30, 0, 0, time.UTC)))
	assert.False(t, w.Contains(date(2025, time.June, 1)))
	assert.False(t, w.Contains(date(2025, time.June, 9)))
}

func TestWeekDaysPartitionWeek(t *testing.T) {
	// every day inside the range belongs to exactly one bucket
	w := WeekOf(date(2025, time.June, 4))
	seen := map[string]int{}
	for _, d := range w.Days() {
		seen[d.Format("2006-01-02")]++
	}
	require.Len(t, seen, 7)
	for day, n := range seen {
		assert.Equal(t, 1, n, "day %s", day)
	}
}

func TestWeekIsCurrent(t *testing.T) {
	now := time.Date(2025, time.June, 4, 15, 0, 0, 0, time.UTC)

	assert.True(t, WeekOf(now).IsCurrent(now))
	assert.False(t, WeekOf(now).Offset(1).IsCurrent(now))
	assert.False(t, WeekOf(now).Offset(-1).IsCurrent(now))
}

func TestWeekFormatDisplay(t *testing.T) {
	sameMonth := WeekOf(date(2025, time.June, 2))
	assert.Equal(t, "02 - 08 Jun 2025", sameMonth.FormatDisplay())

	crossMonth := WeekOf(date(2025, time.June, 30))
	assert.Equal(t, "30 Jun - 06 Jul 2025", crossMonth.FormatDisplay())
}
