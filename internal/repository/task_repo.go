package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agenda_backend/internal/domain"
)

var ErrNotFound = errors.New("not found")

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskFilter narrows List. Nil fields are ignored.
type TaskFilter struct {
	Completed *bool
	ProjectID *int64
}

const taskColumns = `id, user_id, project_id, title, description, estimated_duration, assigned_date, completed, created_at`

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UserID, &t.ProjectID, &t.Title, &t.Description,
		&t.EstimatedDuration, &t.AssignedDate, &t.Completed, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func collectTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var res []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.ProjectID, &t.Title, &t.Description,
			&t.EstimatedDuration, &t.AssignedDate, &t.Completed, &t.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

func (r *TaskRepository) List(ctx context.Context, userID int64, f TaskFilter) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1`
	args := []any{userID}

	if f.Completed != nil {
		args = append(args, *f.Completed)
		query += ` AND completed = $2`
	}
	if f.ProjectID != nil {
		args = append(args, *f.ProjectID)
		if len(args) == 2 {
			query += ` AND project_id = $2`
		} else {
			query += ` AND project_id = $3`
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Task, error) {
	return scanTask(r.db.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID))
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO tasks (user_id, project_id, title, description, estimated_duration, assigned_date, completed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		t.UserID, t.ProjectID, t.Title, t.Description, t.EstimatedDuration,
		t.AssignedDate, t.Completed,
	).Scan(&t.ID, &t.CreatedAt)
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks
		 SET project_id = $1, title = $2, description = $3,
		     estimated_duration = $4, assigned_date = $5, completed = $6
		 WHERE id = $7 AND user_id = $8`,
		t.ProjectID, t.Title, t.Description, t.EstimatedDuration,
		t.AssignedDate, t.Completed, t.ID, t.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetCompleted is idempotent: setting an already-set flag changes nothing.
func (r *TaskRepository) SetCompleted(ctx context.Context, userID, id int64, completed bool) (*domain.Task, error) {
	return scanTask(r.db.QueryRow(ctx,
		`UPDATE tasks SET completed = $1
		 WHERE id = $2 AND user_id = $3
		 RETURNING `+taskColumns,
		completed, id, userID))
}

// ListInRange returns the user's dated tasks with assigned_date inside
// [start, end], ordered by date then title.
func (r *TaskRepository) ListInRange(ctx context.Context, userID int64, start, end time.Time) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = $1 AND assigned_date BETWEEN $2 AND $3
		 ORDER BY assigned_date, title`,
		userID, start, end)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// ListUnscheduled returns the user's tasks with no assigned date.
func (r *TaskRepository) ListUnscheduled(ctx context.Context, userID int64) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE user_id = $1 AND assigned_date IS NULL
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

// RangeCounts returns completed and total counts for the user's dated
// tasks inside [start, end].
func (r *TaskRepository) RangeCounts(ctx context.Context, userID int64, start, end time.Time) (completed, total int, err error) {
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE completed), COUNT(*)
		 FROM tasks
		 WHERE user_id = $1 AND assigned_date BETWEEN $2 AND $3`,
		userID, start, end).Scan(&completed, &total)
	return completed, total, err
}
