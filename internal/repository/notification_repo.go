package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agenda_backend/internal/domain"
)

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

const notificationColumns = `id, user_id, title, message, kind, level, read, task_id, project_id, created_at, expires_at`

func collectNotifications(rows pgx.Rows) ([]*domain.Notification, error) {
	defer rows.Close()

	var res []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Kind, &n.Level,
			&n.Read, &n.TaskID, &n.ProjectID, &n.CreatedAt, &n.ExpiresAt); err != nil {
			return nil, err
		}
		res = append(res, &n)
	}
	return res, rows.Err()
}

// ListActive returns the user's unexpired notifications, unread first,
// newest first within each group.
func (r *NotificationRepository) ListActive(ctx context.Context, userID int64, now time.Time) ([]*domain.Notification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE user_id = $1 AND (expires_at IS NULL OR expires_at > $2)
		 ORDER BY read, created_at DESC`,
		userID, now)
	if err != nil {
		return nil, err
	}
	return collectNotifications(rows)
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO notifications (user_id, title, message, kind, level, read, task_id, project_id, expires_at)
		 VALUES ($1, $2, $3, $4, $5, false, $6, $7, $8)
		 RETURNING id, created_at`,
		n.UserID, n.Title, n.Message, n.Kind, n.Level, n.TaskID, n.ProjectID, n.ExpiresAt,
	).Scan(&n.ID, &n.CreatedAt)
}

// MarkRead is idempotent.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// HasUnreadForTask suppresses duplicate alerts about the same task.
func (r *NotificationRepository) HasUnreadForTask(ctx context.Context, userID, taskID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM notifications
		   WHERE user_id = $1 AND task_id = $2 AND read = false
		 )`, userID, taskID).Scan(&exists)
	return exists, err
}

// HasUnreadForProject suppresses duplicate alerts about the same project.
func (r *NotificationRepository) HasUnreadForProject(ctx context.Context, userID, projectID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM notifications
		   WHERE user_id = $1 AND project_id = $2 AND read = false
		 )`, userID, projectID).Scan(&exists)
	return exists, err
}
