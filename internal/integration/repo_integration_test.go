package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"agenda_backend/internal/domain"
	"agenda_backend/internal/repository"
	"agenda_backend/internal/service"
)

func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func createTestUser(t *testing.T, db *pgxpool.Pool, tag string) int64 {
	t.Helper()
	u := &domain.User{
		Email:        fmt.Sprintf("%s-%d@test.local", tag, time.Now().UnixNano()),
		Username:     tag,
		PasswordHash: "x",
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}

func TestProjectDeleteDetachesTasks(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	userID := createTestUser(t, db, "detach")
	projects := repository.NewProjectRepository(db)
	tasks := repository.NewTaskRepository(db)

	p := &domain.Project{UserID: userID, Name: "doomed", Status: domain.ProjectStatusPlanned}
	if err := projects.Create(ctx, p); err != nil {
		t.Fatalf("create project: %v", err)
	}

	task := &domain.Task{UserID: userID, Title: "survivor", ProjectID: &p.ID}
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := projects.Delete(ctx, userID, p.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	got, err := tasks.GetByID(ctx, userID, task.ID)
	if err != nil {
		t.Fatalf("task should survive project deletion: %v", err)
	}
	if got.ProjectID != nil {
		t.Fatalf("expected project_id to be cleared, got %d", *got.ProjectID)
	}
}

func TestTaskOwnershipIsolation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	tasks := repository.NewTaskRepository(db)

	task := &domain.Task{UserID: alice, Title: "private"}
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	if _, err := tasks.GetByID(ctx, bob, task.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign task, got %v", err)
	}
	if err := tasks.Delete(ctx, bob, task.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting foreign task, got %v", err)
	}
	if _, err := tasks.SetCompleted(ctx, bob, task.ID, true); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound completing foreign task, got %v", err)
	}

	// the owner still sees it untouched
	got, err := tasks.GetByID(ctx, alice, task.ID)
	if err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if got.Completed {
		t.Fatalf("task should not have been completed by another user")
	}
}

func TestSetCompletedIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	userID := createTestUser(t, db, "idem")
	tasks := repository.NewTaskRepository(db)

	task := &domain.Task{UserID: userID, Title: "repeatable"}
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	for i := 0; i < 3; i++ {
		got, err := tasks.SetCompleted(ctx, userID, task.ID, true)
		if err != nil {
			t.Fatalf("set completed (round %d): %v", i, err)
		}
		if !got.Completed {
			t.Fatalf("expected completed=true (round %d)", i)
		}
	}

	got, err := tasks.SetCompleted(ctx, userID, task.ID, false)
	if err != nil {
		t.Fatalf("unset completed: %v", err)
	}
	if got.Completed {
		t.Fatalf("expected completed=false")
	}
}

func TestGenerateSuppressesDuplicateAlerts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	userID := createTestUser(t, db, "alerts")
	tasks := repository.NewTaskRepository(db)
	notifications := repository.NewNotificationRepository(db)
	svc := service.NewNotificationService(
		zerolog.Nop(),
		tasks,
		repository.NewProjectRepository(db),
		notifications,
	)

	now := time.Now().UTC()
	overdue := now.AddDate(0, 0, -3)
	task := &domain.Task{UserID: userID, Title: "late report", AssignedDate: &overdue}
	if err := tasks.Create(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	first, err := svc.Generate(ctx, userID, now)
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 alert for the overdue task, got %d", len(first))
	}
	if first[0].TaskID == nil || *first[0].TaskID != task.ID {
		t.Fatalf("alert should reference task %d, got %+v", task.ID, first[0])
	}

	// the unread alert from the first round suppresses a second one
	second, err := svc.Generate(ctx, userID, now)
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if len(second) != 0 {
		t.Fatalf("expected no duplicate alerts, got %d", len(second))
	}

	// once read, the task qualifies for a fresh alert again
	if err := notifications.MarkRead(ctx, userID, first[0].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	third, err := svc.Generate(ctx, userID, now)
	if err != nil {
		t.Fatalf("third generate: %v", err)
	}
	if len(third) != 1 {
		t.Fatalf("expected a new alert after the old one was read, got %d", len(third))
	}
}

func TestListActiveOverlappingBounds(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	userID := createTestUser(t, db, "overlap")
	projects := repository.NewProjectRepository(db)
	week := service.WeekOf(time.Now())

	create := func(name, status string, start, end *time.Time) int64 {
		t.Helper()
		p := &domain.Project{
			UserID:           userID,
			Name:             name,
			Status:           status,
			StartDate:        start,
			EstimatedEndDate: end,
		}
		if err := projects.Create(ctx, p); err != nil {
			t.Fatalf("create project %s: %v", name, err)
		}
		return p.ID
	}
	day := func(n int) *time.Time {
		d := week.Start.AddDate(0, 0, n)
		return &d
	}

	noDates := create("no dates", domain.ProjectStatusInProgress, nil, nil)
	openStart := create("open start", domain.ProjectStatusPlanned, nil, day(0))
	openEnd := create("open end", domain.ProjectStatusInProgress, day(6), nil)
	spanning := create("spanning", domain.ProjectStatusOnHold, day(-30), day(30))
	endedBefore := create("ended before", domain.ProjectStatusInProgress, day(-14), day(-1))
	done := create("done", domain.ProjectStatusCompleted, nil, nil)

	got, err := projects.ListActiveOverlapping(ctx, userID, week.Start, week.End)
	if err != nil {
		t.Fatalf("list overlapping: %v", err)
	}
	found := map[int64]bool{}
	for _, p := range got {
		found[p.ID] = true
	}

	for _, id := range []int64{noDates, openStart, openEnd, spanning} {
		if !found[id] {
			t.Fatalf("project %d should overlap the week", id)
		}
	}
	if found[endedBefore] {
		t.Fatalf("project ending before the week should not be listed")
	}
	if found[done] {
		t.Fatalf("completed project should not be listed")
	}
}
