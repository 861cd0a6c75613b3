package domain

import "time"

type Task struct {
	ID                int64      `db:"id"`
	UserID            int64      `db:"user_id"`
	ProjectID         *int64     `db:"project_id"`
	Title             string     `db:"title"`
	Description       string     `db:"description"`
	EstimatedDuration string     `db:"estimated_duration"`
	AssignedDate      *time.Time `db:"assigned_date"`
	Completed         bool       `db:"completed"`
	CreatedAt         time.Time  `db:"created_at"`
}
