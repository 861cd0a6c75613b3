package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"agenda_backend/internal/domain"
	"agenda_backend/internal/repository"
)

const notificationTTL = 7 * 24 * time.Hour

// NotificationService runs the analysis engine over a user's tasks and
// projects and persists alerts for whatever came out critical.
type NotificationService struct {
	logger        zerolog.Logger
	tasks         *repository.TaskRepository
	projects      *repository.ProjectRepository
	notifications *repository.NotificationRepository
}

func NewNotificationService(
	logger zerolog.Logger,
	tasks *repository.TaskRepository,
	projects *repository.ProjectRepository,
	notifications *repository.NotificationRepository,
) *NotificationService {
	return &NotificationService{
		logger:        logger,
		tasks:         tasks,
		projects:      projects,
		notifications: notifications,
	}
}

// Generate analyses the user's state and returns the notifications it
// created. An unread notification for the same task or project suppresses
// a duplicate.
func (s *NotificationService) Generate(ctx context.Context, userID int64, now time.Time) ([]*domain.Notification, error) {
	tasks, err := s.tasks.List(ctx, userID, repository.TaskFilter{})
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	projectsByID := make(map[int64]*domain.Project, len(projects))
	for _, p := range projects {
		projectsByID[p.ID] = p
	}
	tasksByProject := make(map[int64][]*domain.Task)
	counts := make(map[int64]int)
	for _, t := range tasks {
		if t.ProjectID != nil {
			tasksByProject[*t.ProjectID] = append(tasksByProject[*t.ProjectID], t)
			counts[*t.ProjectID]++
		}
	}

	var created []*domain.Notification

	tasksByID := make(map[int64]*domain.Task, len(tasks))
	for _, t := range tasks {
		tasksByID[t.ID] = t
	}

	for _, score := range PrioritizeTasks(tasks, projectsByID, counts, now) {
		task := tasksByID[score.TaskID]
		if task == nil || task.Completed || !score.IsCritical() {
			continue
		}

		exists, err := s.notifications.HasUnreadForTask(ctx, userID, task.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		n := s.taskNotification(userID, task, score, now)
		if err := s.notifications.Create(ctx, n); err != nil {
			return nil, err
		}
		created = append(created, n)
	}

	for _, p := range projects {
		if !p.IsActive() {
			continue
		}

		progress := CalculateProgress(tasksByProject[p.ID], now)
		if progress.TotalTasks == 0 || progress.Health != HealthCritical {
			continue
		}

		exists, err := s.notifications.HasUnreadForProject(ctx, userID, p.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		n := s.projectNotification(userID, p, progress, now)
		if err := s.notifications.Create(ctx, n); err != nil {
			return nil, err
		}
		created = append(created, n)
	}

	if len(created) > 0 {
		s.logger.Info().
			Int64("user_id", userID).
			Int("count", len(created)).
			Msg("generated notifications")
	}
	return created, nil
}

func (s *NotificationService) taskNotification(userID int64, task *domain.Task, score TaskPriorityScore, now time.Time) *domain.Notification {
	expires := now.Add(notificationTTL)
	return &domain.Notification{
		UserID:    userID,
		Title:     fmt.Sprintf("Critical task: %s", task.Title),
		Message:   strings.Join(score.Reasons, "; "),
		Kind:      domain.NotificationKindTask,
		Level:     domain.NotificationLevelCritical,
		TaskID:    &task.ID,
		ExpiresAt: &expires,
	}
}

func (s *NotificationService) projectNotification(userID int64, p *domain.Project, progress ProjectProgress, now time.Time) *domain.Notification {
	expires := now.Add(notificationTTL)
	return &domain.Notification{
		UserID: userID,
		Title:  fmt.Sprintf("Project at risk: %s", p.Name),
		Message: fmt.Sprintf("%.1f%% complete, %d tasks pending",
			progress.CompletionPct, progress.PendingTasks),
		Kind:      domain.NotificationKindProject,
		Level:     domain.NotificationLevelCritical,
		ProjectID: &p.ID,
		ExpiresAt: &expires,
	}
}
