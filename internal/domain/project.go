package domain

import "time"

// Project statuses. A project is "active" while planned, in progress or
// on hold; completed and cancelled projects no longer show up on the
// weekly agenda.
const (
	ProjectStatusPlanned    = "planned"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on_hold"
	ProjectStatusCancelled  = "cancelled"
)

func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusPlanned, ProjectStatusInProgress, ProjectStatusCompleted,
		ProjectStatusOnHold, ProjectStatusCancelled:
		return true
	}
	return false
}

type Project struct {
	ID                int64      `db:"id"`
	UserID            int64      `db:"user_id"`
	Name              string     `db:"name"`
	Description       string     `db:"description"`
	Status            string     `db:"status"`
	StartDate         *time.Time `db:"start_date"`
	EstimatedEndDate  *time.Time `db:"estimated_end_date"`
	EstimatedDuration string     `db:"estimated_duration"`
	CreatedAt         time.Time  `db:"created_at"`
}

func (p *Project) IsActive() bool {
	switch p.Status {
	case ProjectStatusPlanned, ProjectStatusInProgress, ProjectStatusOnHold:
		return true
	}
	return false
}

// ProjectStats aggregates task counters for a project detail view.
type ProjectStats struct {
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	PendingTasks   int     `json:"pending_tasks"`
	CompletionPct  float64 `json:"completion_percentage"`
}
