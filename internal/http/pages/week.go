package pages

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"agenda_backend/internal/domain"
	"agenda_backend/internal/service"
)

type weekDay struct {
	Date    time.Time
	Weekday string
	IsToday bool
	Tasks   []*domain.Task
}

// Week renders the weekly agenda. Navigation is a plain offset query
// param, so prev/next always move exactly one week.
func (p *Pages) Week(c *gin.Context) {
	userID := pageUserID(c)
	ctx := c.Request.Context()
	now := time.Now()

	offset := 0
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}

	week := service.WeekOf(now).Offset(offset)

	dated, err := p.h.Tasks.ListInRange(ctx, userID, week.Start, week.End)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "week.html", gin.H{
			"Error":      "Failed to load agenda",
			"Display":    week.FormatDisplay(),
			"Offset":     offset,
			"PrevOffset": offset - 1,
			"NextOffset": offset + 1,
			"Completed":  0,
			"Total":      0,
		})
		return
	}
	unscheduled, _ := p.h.Tasks.ListUnscheduled(ctx, userID)
	projects, _ := p.h.Projects.ListActiveOverlapping(ctx, userID, week.Start, week.End)
	completed, total, _ := p.h.Tasks.RangeCounts(ctx, userID, week.Start, week.End)

	byDate := make(map[string][]*domain.Task)
	for _, t := range dated {
		key := t.AssignedDate.Format(dateLayout)
		byDate[key] = append(byDate[key], t)
	}

	today := now.Format(dateLayout)
	days := make([]weekDay, 0, 7)
	for _, d := range week.Days() {
		key := d.Format(dateLayout)
		days = append(days, weekDay{
			Date:    d,
			Weekday: d.Weekday().String(),
			IsToday: key == today,
			Tasks:   byDate[key],
		})
	}

	c.HTML(http.StatusOK, "week.html", gin.H{
		"Display":     week.FormatDisplay(),
		"Current":     week.IsCurrent(now),
		"Offset":      offset,
		"PrevOffset":  offset - 1,
		"NextOffset":  offset + 1,
		"Days":        days,
		"Unscheduled": unscheduled,
		"Projects":    projects,
		"Completed":   completed,
		"Total":       total,
	})
}
