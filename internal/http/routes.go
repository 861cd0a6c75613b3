package http

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"agenda_backend/internal/config"
	"agenda_backend/internal/http/handlers"
	"agenda_backend/internal/http/middleware"
	"agenda_backend/internal/http/pages"
	"agenda_backend/internal/logger"
	"agenda_backend/internal/repository"
	"agenda_backend/internal/service"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	log := logger.Get()

	auth := service.NewAuthService(
		log,
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		repository.NewResetRepository(db),
		cfg.RefreshTokenTTL,
		cfg.ResetTokenTTL,
	)
	h := handlers.NewHandler(db, log, auth)
	healthHandler := handlers.NewHealthHandler(db, version)

	r.Use(middleware.Metrics())
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, cfg)

	// Legacy /api routes kept for older clients
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	api.GET("/health", healthHandler.Health)
	registerAPIRoutes(api, h, cfg)

	// OpenAPI schema and viewer
	r.StaticFile("/api/openapi.yaml", "./api/openapi.yaml")
	r.GET("/docs", docsPage)

	registerPageRoutes(r, h)
}

// corsConfig allows credentialed requests from the configured origins.
// The wildcard cannot carry credentials, so it falls back to allow-all.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			return c
		}
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)

	// Auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", authRL, h.Register)
		auth.POST("/login", authRL, h.Login)
		auth.POST("/refresh", authRL, h.Refresh)
		auth.POST("/logout", middleware.JWT(), h.Logout)
		auth.POST("/password/change", middleware.JWT(), h.ChangePassword)
		auth.POST("/password/reset", authRL, h.RequestPasswordReset)
		auth.POST("/password/reset/confirm", authRL, h.ConfirmPasswordReset)
	}

	// User profile
	api.GET("/me", middleware.JWT(), h.Me)

	// Tasks
	tasks := api.Group("/tasks")
	tasks.Use(middleware.JWT())
	{
		tasks.GET("", h.ListTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/:id", h.GetTask)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.PATCH("/:id/complete", h.CompleteTask)
	}

	// Projects
	projects := api.Group("/projects")
	projects.Use(middleware.JWT())
	{
		projects.GET("", h.ListProjects)
		projects.POST("", h.CreateProject)
		projects.GET("/:id", h.GetProject)
		projects.PUT("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)
	}

	// Weekly agenda
	api.GET("/agenda/week", middleware.JWT(), h.WeekAgenda)

	// Notifications
	notifications := api.Group("/notifications")
	notifications.Use(middleware.JWT())
	{
		notifications.GET("", h.ListNotifications)
		notifications.POST("/generate", h.GenerateNotifications)
		notifications.PATCH("/:id/read", h.MarkNotificationRead)
		notifications.DELETE("/:id", h.DeleteNotification)
	}
}

func registerPageRoutes(r *gin.Engine, h *handlers.Handler) {
	r.SetFuncMap(template.FuncMap{
		"deref": func(p *int64) int64 {
			if p == nil {
				return 0
			}
			return *p
		},
	})
	r.LoadHTMLGlob("web/templates/*.html")

	p := pages.New(h)

	// form posts get an in-memory limiter so brute forcing stays throttled
	// even without redis
	formRL := middleware.SimpleRateLimit(20, time.Minute)

	r.GET("/login", p.LoginForm)
	r.POST("/login", formRL, p.Login)
	r.GET("/register", p.RegisterForm)
	r.POST("/register", formRL, p.Register)
	r.GET("/password/reset", p.ResetRequestForm)
	r.POST("/password/reset", formRL, p.ResetRequest)
	r.GET("/password/reset/confirm", p.ResetConfirmForm)
	r.POST("/password/reset/confirm", formRL, p.ResetConfirm)

	authed := r.Group("/")
	authed.Use(p.RequireAuth())
	{
		authed.GET("/logout", p.Logout)
		authed.GET("/password", p.PasswordForm)
		authed.POST("/password", p.ChangePassword)

		authed.GET("/tasks", p.TaskList)
		authed.GET("/tasks/new", p.TaskForm)
		authed.POST("/tasks/new", p.SaveTask)
		authed.GET("/tasks/:id", p.TaskDetail)
		authed.GET("/tasks/:id/edit", p.TaskForm)
		authed.POST("/tasks/:id/edit", p.SaveTask)
		authed.POST("/tasks/:id/delete", p.DeleteTask)
		authed.POST("/tasks/:id/complete", p.ToggleTask)

		authed.GET("/projects", p.ProjectList)
		authed.GET("/projects/new", p.ProjectForm)
		authed.POST("/projects/new", p.SaveProject)
		authed.GET("/projects/:id", p.ProjectDetail)
		authed.GET("/projects/:id/edit", p.ProjectForm)
		authed.POST("/projects/:id/edit", p.SaveProject)
		authed.POST("/projects/:id/delete", p.DeleteProject)

		authed.GET("/week", p.Week)
	}

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/tasks")
	})
}

// docsPage serves a minimal Swagger UI shell pointed at the schema.
func docsPage(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html>
<head>
  <title>API docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({url: "/api/openapi.yaml", dom_id: "#swagger-ui"});
  </script>
</body>
</html>`))
}
