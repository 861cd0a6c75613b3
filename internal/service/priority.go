package service

import (
	"fmt"
	"sort"
	"time"

	"agenda_backend/internal/domain"
)

// Priority levels, highest first.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
	PriorityLow      = "low"
)

// Urgency buckets derived from the assigned date.
const (
	UrgencyOverdue     = "overdue"
	UrgencyDueToday    = "due_today"
	UrgencyDueThisWeek = "due_this_week"
	UrgencyDueNextWeek = "due_next_week"
	UrgencyNoDeadline  = "no_deadline"
)

// Scoring constants. Overdue beats everything; undated tasks score low but
// are never invisible.
const (
	overdueScore     = 10.0
	dueTodayScore    = 8.0
	dueThisWeekScore = 6.0
	dueNextWeekScore = 4.0
	noDeadlineScore  = 2.0

	importantProjectBonus = 2.0
	oldTaskBonus          = 1.0
	oldTaskThresholdDays  = 7

	importantProjectDeadlineDays = 30
	importantProjectTaskCount    = 5
)

// TaskPriorityScore is the computed priority of one task.
type TaskPriorityScore struct {
	TaskID   int64    `json:"task_id"`
	Priority string   `json:"priority"`
	Urgency  string   `json:"urgency"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
}

func (s TaskPriorityScore) IsCritical() bool {
	return s.Priority == PriorityCritical
}

// ScoreTask computes the priority of a task. project may be nil; it only
// contributes an importance bonus. projectTaskCount is the number of tasks
// in that project (ignored when project is nil).
func ScoreTask(task *domain.Task, project *domain.Project, projectTaskCount int, now time.Time) TaskPriorityScore {
	today := dateOnly(now)

	urgency, score, reason := urgencyScore(task, today)
	reasons := []string{reason}

	if project != nil && isImportantProject(project, projectTaskCount, today) {
		score += importantProjectBonus
		reasons = append(reasons, fmt.Sprintf("important project: %s", project.Name))
	}

	if today.Sub(dateOnly(task.CreatedAt)) > oldTaskThresholdDays*24*time.Hour {
		score += oldTaskBonus
		reasons = append(reasons, fmt.Sprintf("older than %d days", oldTaskThresholdDays))
	}

	return TaskPriorityScore{
		TaskID:   task.ID,
		Priority: scoreToPriority(score),
		Urgency:  urgency,
		Score:    score,
		Reasons:  reasons,
	}
}

func urgencyScore(task *domain.Task, today time.Time) (urgency string, score float64, reason string) {
	if task.AssignedDate == nil {
		return UrgencyNoDeadline, noDeadlineScore, "no deadline"
	}

	days := int(dateOnly(*task.AssignedDate).Sub(today).Hours() / 24)
	switch {
	case days < 0:
		return UrgencyOverdue, overdueScore, fmt.Sprintf("overdue by %d days", -days)
	case days == 0:
		return UrgencyDueToday, dueTodayScore, "due today"
	case days <= 7:
		return UrgencyDueThisWeek, dueThisWeekScore, fmt.Sprintf("due in %d days", days)
	case days <= 14:
		return UrgencyDueNextWeek, dueNextWeekScore, fmt.Sprintf("due in %d days", days)
	default:
		return UrgencyNoDeadline, noDeadlineScore, fmt.Sprintf("due in %d days", days)
	}
}

// A project is important when it is in progress and either its deadline is
// within 30 days or it carries at least 5 tasks.
func isImportantProject(p *domain.Project, taskCount int, today time.Time) bool {
	if p.Status != domain.ProjectStatusInProgress {
		return false
	}

	if p.EstimatedEndDate != nil {
		days := int(dateOnly(*p.EstimatedEndDate).Sub(today).Hours() / 24)
		if days >= 0 && days <= importantProjectDeadlineDays {
			return true
		}
	}

	return taskCount >= importantProjectTaskCount
}

func scoreToPriority(score float64) string {
	switch {
	case score >= 9.0:
		return PriorityCritical
	case score >= 7.0:
		return PriorityHigh
	case score >= 5.0:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// PrioritizeTasks scores every task and returns the results ordered by
// score, highest first. projects maps project id to project, counts maps
// project id to its task count; both may be sparse.
func PrioritizeTasks(tasks []*domain.Task, projects map[int64]*domain.Project, counts map[int64]int, now time.Time) []TaskPriorityScore {
	scores := make([]TaskPriorityScore, 0, len(tasks))
	for _, t := range tasks {
		var project *domain.Project
		var count int
		if t.ProjectID != nil {
			project = projects[*t.ProjectID]
			count = counts[*t.ProjectID]
		}
		scores = append(scores, ScoreTask(t, project, count, now))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}

// Project health statuses.
const (
	HealthExcellent = "excellent"
	HealthGood      = "good"
	HealthFair      = "fair"
	HealthPoor      = "poor"
	HealthCritical  = "critical"
)

// ProjectProgress carries progress metrics beyond the raw percentage.
type ProjectProgress struct {
	CompletionPct       float64    `json:"completion_percentage"`
	Velocity            float64    `json:"velocity"`
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
	Health              string     `json:"health_status"`
	TotalTasks          int        `json:"total_tasks"`
	CompletedTasks      int        `json:"completed_tasks"`
	PendingTasks        int        `json:"pending_tasks"`
}

// CalculateProgress derives progress metrics from a project's tasks.
// Velocity counts tasks completed among those created in the last 30 days,
// per day.
func CalculateProgress(tasks []*domain.Task, now time.Time) ProjectProgress {
	var completed, pending, recentCompletions int
	thirtyDaysAgo := now.AddDate(0, 0, -30)

	for _, t := range tasks {
		if t.Completed {
			completed++
			if t.CreatedAt.After(thirtyDaysAgo) {
				recentCompletions++
			}
		} else {
			pending++
		}
	}

	total := completed + pending
	progress := ProjectProgress{
		TotalTasks:     total,
		CompletedTasks: completed,
		PendingTasks:   pending,
		Velocity:       float64(recentCompletions) / 30.0,
	}
	if total > 0 {
		progress.CompletionPct = float64(completed) / float64(total) * 100
	}

	if progress.Velocity > 0 && pending > 0 {
		daysNeeded := int(float64(pending) / progress.Velocity)
		estimated := dateOnly(now).AddDate(0, 0, daysNeeded)
		progress.EstimatedCompletion = &estimated
	}

	progress.Health = assessHealth(progress.CompletionPct)
	return progress
}

func assessHealth(completionPct float64) string {
	switch {
	case completionPct >= 90:
		return HealthExcellent
	case completionPct >= 70:
		return HealthGood
	case completionPct >= 50:
		return HealthFair
	case completionPct >= 25:
		return HealthPoor
	default:
		return HealthCritical
	}
}
