package domain

import "time"

// Notification kinds and levels.
const (
	NotificationKindTask        = "task"
	NotificationKindProject     = "project"
	NotificationKindSystem      = "system"
	NotificationKindAchievement = "achievement"

	NotificationLevelCritical = "critical"
	NotificationLevelWarning  = "warning"
	NotificationLevelInfo     = "info"
	NotificationLevelSuccess  = "success"
)

type Notification struct {
	ID        int64      `db:"id"`
	UserID    int64      `db:"user_id"`
	Title     string     `db:"title"`
	Message   string     `db:"message"`
	Kind      string     `db:"kind"`
	Level     string     `db:"level"`
	Read      bool       `db:"read"`
	TaskID    *int64     `db:"task_id"`
	ProjectID *int64     `db:"project_id"`
	CreatedAt time.Time  `db:"created_at"`
	ExpiresAt *time.Time `db:"expires_at"`
}
