package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"agenda_backend/internal/domain"
	"agenda_backend/internal/repository"
	"agenda_backend/internal/service"
)

type projectResponse struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	Status            string    `json:"status"`
	StartDate         *string   `json:"start_date,omitempty"`
	EstimatedEndDate  *string   `json:"estimated_end_date,omitempty"`
	EstimatedDuration string    `json:"estimated_duration,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

func newProjectResponse(p *domain.Project) projectResponse {
	resp := projectResponse{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Status:            p.Status,
		EstimatedDuration: p.EstimatedDuration,
		CreatedAt:         p.CreatedAt,
	}
	if p.StartDate != nil {
		d := p.StartDate.Format(dateLayout)
		resp.StartDate = &d
	}
	if p.EstimatedEndDate != nil {
		d := p.EstimatedEndDate.Format(dateLayout)
		resp.EstimatedEndDate = &d
	}
	return resp
}

type projectRequest struct {
	Name              string  `json:"name" binding:"required,max=255"`
	Description       string  `json:"description"`
	Status            string  `json:"status"`
	StartDate         *string `json:"start_date"`
	EstimatedEndDate  *string `json:"estimated_end_date"`
	EstimatedDuration string  `json:"estimated_duration" binding:"max=100"`
}

func (h *Handler) applyProjectRequest(c *gin.Context, req *projectRequest, p *domain.Project) bool {
	p.Name = req.Name
	p.Description = req.Description
	p.EstimatedDuration = req.EstimatedDuration
	p.StartDate = nil
	p.EstimatedEndDate = nil

	p.Status = req.Status
	if p.Status == "" {
		p.Status = domain.ProjectStatusPlanned
	}
	if !domain.ValidProjectStatus(p.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project status"})
		return false
	}

	if req.StartDate != nil && *req.StartDate != "" {
		d, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return false
		}
		p.StartDate = &d
	}
	if req.EstimatedEndDate != nil && *req.EstimatedEndDate != "" {
		d, err := time.Parse(dateLayout, *req.EstimatedEndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "estimated_end_date must be YYYY-MM-DD"})
			return false
		}
		p.EstimatedEndDate = &d
	}

	return true
}

func (h *Handler) ListProjects(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	projects, err := h.Projects.List(c.Request.Context(), userID)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list projects")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, newProjectResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"projects": resp})
}

func (h *Handler) CreateProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	project := &domain.Project{UserID: userID}
	if !h.applyProjectRequest(c, &req, project) {
		return
	}

	if err := h.Projects.Create(c.Request.Context(), project); err != nil {
		h.Logger.Error().Err(err).Msg("failed to create project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, newProjectResponse(project))
}

// GetProject returns the project with task stats and progress metrics.
func (h *Handler) GetProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	ctx := c.Request.Context()
	project, err := h.Projects.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.Logger.Error().Err(err).Msg("failed to get project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}

	stats, err := h.Projects.Stats(ctx, userID, id)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to get project stats")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}

	tasks, err := h.Tasks.List(ctx, userID, repository.TaskFilter{ProjectID: &id})
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list project tasks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project":  newProjectResponse(project),
		"stats":    stats,
		"progress": service.CalculateProgress(tasks, time.Now()),
		"tasks":    newTaskListResponse(tasks),
	})
}

func (h *Handler) UpdateProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	project := &domain.Project{ID: id, UserID: userID}
	if !h.applyProjectRequest(c, &req, project) {
		return
	}

	if err := h.Projects.Update(c.Request.Context(), project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.Logger.Error().Err(err).Msg("failed to update project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		return
	}

	updated, err := h.Projects.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		c.JSON(http.StatusOK, newProjectResponse(project))
		return
	}
	c.JSON(http.StatusOK, newProjectResponse(updated))
}

// DeleteProject removes the project only; its tasks stay and lose the
// project reference.
func (h *Handler) DeleteProject(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	if err := h.Projects.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		h.Logger.Error().Err(err).Msg("failed to delete project")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}

	c.Status(http.StatusNoContent)
}
