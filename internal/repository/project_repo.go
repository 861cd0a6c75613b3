package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"agenda_backend/internal/domain"
)

type ProjectRepository struct {
	db *pgxpool.Pool
}

func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, user_id, name, description, status, start_date, estimated_end_date, estimated_duration, created_at`

func collectProjects(rows pgx.Rows) ([]*domain.Project, error) {
	defer rows.Close()

	var res []*domain.Project
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Status,
			&p.StartDate, &p.EstimatedEndDate, &p.EstimatedDuration, &p.CreatedAt); err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, rows.Err()
}

func (r *ProjectRepository) List(ctx context.Context, userID int64) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}

func (r *ProjectRepository) GetByID(ctx context.Context, userID, id int64) (*domain.Project, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1 AND user_id = $2`,
		id, userID)

	var p domain.Project
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Status,
		&p.StartDate, &p.EstimatedEndDate, &p.EstimatedDuration, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO projects (user_id, name, description, status, start_date, estimated_end_date, estimated_duration)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		p.UserID, p.Name, p.Description, p.Status, p.StartDate,
		p.EstimatedEndDate, p.EstimatedDuration,
	).Scan(&p.ID, &p.CreatedAt)
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE projects
		 SET name = $1, description = $2, status = $3,
		     start_date = $4, estimated_end_date = $5, estimated_duration = $6
		 WHERE id = $7 AND user_id = $8`,
		p.Name, p.Description, p.Status, p.StartDate, p.EstimatedEndDate,
		p.EstimatedDuration, p.ID, p.UserID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the project; the tasks table carries ON DELETE SET NULL,
// so linked tasks survive with project_id cleared.
func (r *ProjectRepository) Delete(ctx context.Context, userID, id int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats aggregates task counters for a project.
func (r *ProjectRepository) Stats(ctx context.Context, userID, projectID int64) (*domain.ProjectStats, error) {
	var s domain.ProjectStats
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
		 FROM tasks
		 WHERE project_id = $1 AND user_id = $2`,
		projectID, userID).Scan(&s.TotalTasks, &s.CompletedTasks)
	if err != nil {
		return nil, err
	}

	s.PendingTasks = s.TotalTasks - s.CompletedTasks
	if s.TotalTasks > 0 {
		s.CompletionPct = float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
	}
	return &s, nil
}

// ListActiveOverlapping returns active projects whose [start_date,
// estimated_end_date] range touches [start, end]. Projects with no dates
// at all count as always ongoing.
func (r *ProjectRepository) ListActiveOverlapping(ctx context.Context, userID int64, start, end time.Time) ([]*domain.Project, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE user_id = $1
		   AND status IN ('planned', 'in_progress', 'on_hold')
		   AND (start_date IS NULL OR start_date <= $3)
		   AND (estimated_end_date IS NULL OR estimated_end_date >= $2)
		 ORDER BY estimated_end_date NULLS LAST, name`,
		userID, start, end)
	if err != nil {
		return nil, err
	}
	return collectProjects(rows)
}
