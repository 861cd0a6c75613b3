package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"agenda_backend/internal/domain"
	"agenda_backend/internal/service"
)

type agendaDay struct {
	Date    string         `json:"date"`
	Weekday string         `json:"weekday"`
	Tasks   []taskResponse `json:"tasks"`
}

type agendaResponse struct {
	Start          string            `json:"start"`
	End            string            `json:"end"`
	Display        string            `json:"display"`
	Current        bool              `json:"current"`
	Offset         int               `json:"offset"`
	PreviousOffset int               `json:"previous_offset"`
	NextOffset     int               `json:"next_offset"`
	Days           []agendaDay       `json:"days"`
	Unscheduled    []taskResponse    `json:"unscheduled"`
	Projects       []projectResponse `json:"projects"`
	CompletedCount int               `json:"completed_count"`
	TotalCount     int               `json:"total_count"`
}

// WeekAgenda buckets the user's tasks into the seven days of the requested
// week plus an unscheduled bucket, and lists active projects overlapping
// the span. The week is picked by `offset` (weeks relative to the current
// one) or by `date` (any day inside the wanted week).
func (h *Handler) WeekAgenda(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	now := time.Now()

	week, offset, err := resolveWeek(now, c.Query("date"), c.Query("offset"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	dated, err := h.Tasks.ListInRange(ctx, userID, week.Start, week.End)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list week tasks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build agenda"})
		return
	}
	unscheduled, err := h.Tasks.ListUnscheduled(ctx, userID)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list unscheduled tasks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build agenda"})
		return
	}
	projects, err := h.Projects.ListActiveOverlapping(ctx, userID, week.Start, week.End)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list week projects")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build agenda"})
		return
	}
	completed, total, err := h.Tasks.RangeCounts(ctx, userID, week.Start, week.End)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to count week tasks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build agenda"})
		return
	}

	c.JSON(http.StatusOK, buildAgendaResponse(week, offset, now, dated, unscheduled, projects, completed, total))
}

// resolveWeek picks the week to display. A `date` parameter selects the week
// containing that day and wins over `offset`. The returned offset is always
// measured from the current week so prev/next navigation steps from the
// displayed week, wherever it sits.
func resolveWeek(now time.Time, dateParam, offsetParam string) (service.WeekRange, int, error) {
	current := service.WeekOf(now)

	if dateParam != "" {
		d, err := time.Parse(dateLayout, dateParam)
		if err != nil {
			return service.WeekRange{}, 0, errors.New("date must be YYYY-MM-DD")
		}
		week := service.WeekOf(d)
		return week, week.OffsetFrom(current), nil
	}

	if offsetParam != "" {
		n, err := strconv.Atoi(offsetParam)
		if err != nil {
			return service.WeekRange{}, 0, errors.New("offset must be an integer")
		}
		return current.Offset(n), n, nil
	}

	return current, 0, nil
}

// buildAgendaResponse partitions dated tasks into day buckets by exact date
// match; each task lands in exactly one bucket.
func buildAgendaResponse(week service.WeekRange, offset int, now time.Time,
	dated, unscheduled []*domain.Task, projects []*domain.Project,
	completed, total int) agendaResponse {

	byDate := make(map[string][]taskResponse)
	for _, t := range dated {
		key := t.AssignedDate.Format(dateLayout)
		byDate[key] = append(byDate[key], newTaskResponse(t))
	}

	days := make([]agendaDay, 0, 7)
	for _, d := range week.Days() {
		key := d.Format(dateLayout)
		tasks := byDate[key]
		if tasks == nil {
			tasks = []taskResponse{}
		}
		days = append(days, agendaDay{
			Date:    key,
			Weekday: d.Weekday().String(),
			Tasks:   tasks,
		})
	}

	projectResp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		projectResp = append(projectResp, newProjectResponse(p))
	}

	return agendaResponse{
		Start:          week.Start.Format(dateLayout),
		End:            week.End.Format(dateLayout),
		Display:        week.FormatDisplay(),
		Current:        week.IsCurrent(now),
		Offset:         offset,
		PreviousOffset: offset - 1,
		NextOffset:     offset + 1,
		Days:           days,
		Unscheduled:    newTaskListResponse(unscheduled),
		Projects:       projectResp,
		CompletedCount: completed,
		TotalCount:     total,
	}
}
