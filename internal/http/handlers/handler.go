package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"agenda_backend/internal/http/middleware"
	"agenda_backend/internal/repository"
	"agenda_backend/internal/service"
)

// Handler aggregates the repositories and services behind the API routes.
type Handler struct {
	DB     *pgxpool.Pool
	Logger zerolog.Logger

	Users         *repository.UserRepository
	Tasks         *repository.TaskRepository
	Projects      *repository.ProjectRepository
	Notifications *repository.NotificationRepository

	Auth     *service.AuthService
	Notifier *service.NotificationService
}

func NewHandler(db *pgxpool.Pool, logger zerolog.Logger, auth *service.AuthService) *Handler {
	users := repository.NewUserRepository(db)
	tasks := repository.NewTaskRepository(db)
	projects := repository.NewProjectRepository(db)
	notifications := repository.NewNotificationRepository(db)

	return &Handler{
		DB:            db,
		Logger:        logger,
		Users:         users,
		Tasks:         tasks,
		Projects:      projects,
		Notifications: notifications,
		Auth:          auth,
		Notifier:      service.NewNotificationService(logger, tasks, projects, notifications),
	}
}

// getUserID extracts the authenticated user id set by the JWT middleware.
func getUserID(c *gin.Context) (int64, bool) {
	uidVal, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
