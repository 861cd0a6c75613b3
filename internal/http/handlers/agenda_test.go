package handlers

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenda_backend/internal/domain"
	"agenda_backend/internal/service"
)

func dayOf(week service.WeekRange, i int) time.Time {
	return week.Start.AddDate(0, 0, i)
}

func datedTask(id int64, d time.Time) *domain.Task {
	return &domain.Task{ID: id, Title: "task", AssignedDate: &d}
}

func TestResolveWeekDefaultsToCurrent(t *testing.T) {
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)

	week, offset, err := resolveWeek(now, "", "")

	require.NoError(t, err)
	assert.Equal(t, 0, offset)
	assert.Equal(t, service.WeekOf(now), week)
}

func TestResolveWeekByOffset(t *testing.T) {
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)

	week, offset, err := resolveWeek(now, "", "-2")

	require.NoError(t, err)
	assert.Equal(t, -2, offset)
	assert.Equal(t, service.WeekOf(now).Offset(-2), week)
}

func TestResolveWeekByDateNavigatesFromDisplayedWeek(t *testing.T) {
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)

	week, offset, err := resolveWeek(now, "2025-01-01", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC), week.Start)
	assert.Equal(t, -22, offset)

	// stepping "next" from the displayed week must land on its immediate
	// successor, not on the week after the current one
	next, nextOffset, err := resolveWeek(now, "", strconv.Itoa(offset+1))
	require.NoError(t, err)
	assert.Equal(t, offset+1, nextOffset)
	assert.Equal(t, week.End.AddDate(0, 0, 1), next.Start)
	assert.Equal(t, time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC), next.Start)

	resp := buildAgendaResponse(week, offset, now, nil, nil, nil, 0, 0)
	assert.Equal(t, offset-1, resp.PreviousOffset)
	assert.Equal(t, offset+1, resp.NextOffset)
	assert.False(t, resp.Current)
}

func TestResolveWeekRejectsBadParams(t *testing.T) {
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)

	_, _, err := resolveWeek(now, "01/02/2025", "")
	assert.Error(t, err)

	_, _, err = resolveWeek(now, "", "soon")
	assert.Error(t, err)
}

func TestBuildAgendaResponseBuckets(t *testing.T) {
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	week := service.WeekOf(now)

	dated := []*domain.Task{
		datedTask(1, dayOf(week, 0)),
		datedTask(2, dayOf(week, 0)),
		datedTask(3, dayOf(week, 6)),
	}
	unscheduled := []*domain.Task{{ID: 4, Title: "someday"}}

	resp := buildAgendaResponse(week, 0, now, dated, unscheduled, nil, 1, 3)

	require.Len(t, resp.Days, 7)
	assert.Equal(t, "Monday", resp.Days[0].Weekday)
	assert.Equal(t, "Sunday", resp.Days[6].Weekday)

	// each dated task lands in exactly one bucket
	seen := map[int64]int{}
	total := 0
	for _, day := range resp.Days {
		require.NotNil(t, day.Tasks)
		for _, task := range day.Tasks {
			seen[task.ID]++
			total++
		}
	}
	assert.Equal(t, 3, total)
	for id, n := range seen {
		assert.Equal(t, 1, n, "task %d", id)
	}

	assert.Len(t, resp.Days[0].Tasks, 2)
	assert.Len(t, resp.Days[6].Tasks, 1)
	assert.Len(t, resp.Unscheduled, 1)
	assert.Equal(t, 1, resp.CompletedCount)
	assert.Equal(t, 3, resp.TotalCount)
}

func TestBuildAgendaResponseOffsets(t *testing.T) {
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	week := service.WeekOf(now).Offset(2)

	resp := buildAgendaResponse(week, 2, now, nil, nil, nil, 0, 0)

	assert.Equal(t, 2, resp.Offset)
	assert.Equal(t, 1, resp.PreviousOffset)
	assert.Equal(t, 3, resp.NextOffset)
	assert.False(t, resp.Current)
	assert.Equal(t, week.Start.Format("2006-01-02"), resp.Start)
	assert.Equal(t, week.End.Format("2006-01-02"), resp.End)
}

func TestBuildAgendaResponseCurrentWeek(t *testing.T) {
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	week := service.WeekOf(now)

	resp := buildAgendaResponse(week, 0, now, nil, nil, nil, 0, 0)

	assert.True(t, resp.Current)
	assert.Equal(t, -1, resp.PreviousOffset)
	assert.Equal(t, 1, resp.NextOffset)
	for _, day := range resp.Days {
		assert.Empty(t, day.Tasks)
		assert.NotNil(t, day.Tasks)
	}
}

func TestBuildAgendaResponseProjects(t *testing.T) {
	now := time.Date(2025, time.June, 4, 12, 0, 0, 0, time.UTC)
	week := service.WeekOf(now)

	projects := []*domain.Project{
		{ID: 1, Name: "alpha", Status: domain.ProjectStatusInProgress},
		{ID: 2, Name: "beta", Status: domain.ProjectStatusPlanned},
	}

	resp := buildAgendaResponse(week, 0, now, nil, nil, projects, 0, 0)

	require.Len(t, resp.Projects, 2)
	assert.Equal(t, "alpha", resp.Projects[0].Name)
	assert.Equal(t, "in_progress", resp.Projects[0].Status)
}
