package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"agenda_backend/internal/domain"
	"agenda_backend/internal/repository"
)

const dateLayout = "2006-01-02"

type taskResponse struct {
	ID                int64     `json:"id"`
	ProjectID         *int64    `json:"project_id,omitempty"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	EstimatedDuration string    `json:"estimated_duration,omitempty"`
	AssignedDate      *string   `json:"assigned_date,omitempty"`
	Completed         bool      `json:"completed"`
	CreatedAt         time.Time `json:"created_at"`
}

func newTaskResponse(t *domain.Task) taskResponse {
	resp := taskResponse{
		ID:                t.ID,
		ProjectID:         t.ProjectID,
		Title:             t.Title,
		Description:       t.Description,
		EstimatedDuration: t.EstimatedDuration,
		Completed:         t.Completed,
		CreatedAt:         t.CreatedAt,
	}
	if t.AssignedDate != nil {
		d := t.AssignedDate.Format(dateLayout)
		resp.AssignedDate = &d
	}
	return resp
}

func newTaskListResponse(tasks []*domain.Task) []taskResponse {
	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, newTaskResponse(t))
	}
	return resp
}

type taskRequest struct {
	Title             string  `json:"title" binding:"required,max=200"`
	Description       string  `json:"description"`
	EstimatedDuration string  `json:"estimated_duration" binding:"max=100"`
	AssignedDate      *string `json:"assigned_date"`
	ProjectID         *int64  `json:"project_id"`
	Completed         bool    `json:"completed"`
}

// apply copies the request onto a task, validating the date format and that
// a referenced project belongs to the same user.
func (h *Handler) applyTaskRequest(c *gin.Context, userID int64, req *taskRequest, t *domain.Task) bool {
	t.Title = req.Title
	t.Description = req.Description
	t.EstimatedDuration = req.EstimatedDuration
	t.Completed = req.Completed
	t.AssignedDate = nil
	t.ProjectID = nil

	if req.AssignedDate != nil && *req.AssignedDate != "" {
		d, err := time.Parse(dateLayout, *req.AssignedDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "assigned_date must be YYYY-MM-DD"})
			return false
		}
		t.AssignedDate = &d
	}

	if req.ProjectID != nil {
		// ownership check: a task may only reference the user's own project
		if _, err := h.Projects.GetByID(c.Request.Context(), userID, *req.ProjectID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project not found"})
			return false
		}
		t.ProjectID = req.ProjectID
	}

	return true
}

func (h *Handler) ListTasks(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var filter repository.TaskFilter
	if v := c.Query("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be a boolean"})
			return
		}
		filter.Completed = &completed
	}
	if v := c.Query("project_id"); v != "" {
		projectID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project_id must be an integer"})
			return
		}
		filter.ProjectID = &projectID
	}

	tasks, err := h.Tasks.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list tasks")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": newTaskListResponse(tasks)})
}

func (h *Handler) CreateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task := &domain.Task{UserID: userID}
	if !h.applyTaskRequest(c, userID, &req, task) {
		return
	}

	if err := h.Tasks.Create(c.Request.Context(), task); err != nil {
		h.Logger.Error().Err(err).Msg("failed to create task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task))
}

func (h *Handler) GetTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	task, err := h.Tasks.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		h.Logger.Error().Err(err).Msg("failed to get task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get task"})
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}

func (h *Handler) UpdateTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task := &domain.Task{ID: id, UserID: userID}
	if !h.applyTaskRequest(c, userID, &req, task) {
		return
	}

	if err := h.Tasks.Update(c.Request.Context(), task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		h.Logger.Error().Err(err).Msg("failed to update task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}

	// re-read so created_at comes back populated
	updated, err := h.Tasks.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		c.JSON(http.StatusOK, newTaskResponse(task))
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(updated))
}

func (h *Handler) DeleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		h.Logger.Error().Err(err).Msg("failed to delete task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete task"})
		return
	}

	c.Status(http.StatusNoContent)
}

type completeTaskRequest struct {
	Completed *bool `json:"completed"`
}

// CompleteTask sets the completion flag. Without a body it marks the task
// done; repeating the same request is a no-op.
func (h *Handler) CompleteTask(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	completed := true
	if c.Request.ContentLength > 0 {
		var req completeTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if req.Completed != nil {
			completed = *req.Completed
		}
	}

	task, err := h.Tasks.SetCompleted(c.Request.Context(), userID, id, completed)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		h.Logger.Error().Err(err).Msg("failed to set task completion")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task))
}
