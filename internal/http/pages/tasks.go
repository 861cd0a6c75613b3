package pages

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"agenda_backend/internal/domain"
	"agenda_backend/internal/http/middleware"
	"agenda_backend/internal/repository"
)

const dateLayout = "2006-01-02"

func pageUserID(c *gin.Context) int64 {
	return c.GetInt64(middleware.UserIDKey)
}

func (p *Pages) TaskList(c *gin.Context) {
	userID := pageUserID(c)

	tasks, err := p.h.Tasks.List(c.Request.Context(), userID, repository.TaskFilter{})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "tasks_list.html", gin.H{"Error": "Failed to load tasks"})
		return
	}

	c.HTML(http.StatusOK, "tasks_list.html", gin.H{"Tasks": tasks})
}

func (p *Pages) TaskDetail(c *gin.Context) {
	userID := pageUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	task, err := p.h.Tasks.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	var project *domain.Project
	if task.ProjectID != nil {
		project, _ = p.h.Projects.GetByID(c.Request.Context(), userID, *task.ProjectID)
	}

	c.HTML(http.StatusOK, "task_detail.html", gin.H{"Task": task, "Project": project})
}

func (p *Pages) TaskForm(c *gin.Context) {
	userID := pageUserID(c)

	var task *domain.Task
	if idStr := c.Param("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			c.Redirect(http.StatusFound, "/tasks")
			return
		}
		task, err = p.h.Tasks.GetByID(c.Request.Context(), userID, id)
		if err != nil {
			c.Redirect(http.StatusFound, "/tasks")
			return
		}
	}

	projects, _ := p.h.Projects.List(c.Request.Context(), userID)
	c.HTML(http.StatusOK, "task_form.html", gin.H{
		"Task":     task,
		"Projects": projects,
		// pre-fill the date when the weekly view linked here
		"InitialDate": c.Query("date"),
	})
}

// SaveTask handles both create and edit form posts.
func (p *Pages) SaveTask(c *gin.Context) {
	userID := pageUserID(c)
	ctx := c.Request.Context()

	task := &domain.Task{UserID: userID}
	isEdit := false
	if idStr := c.Param("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			c.Redirect(http.StatusFound, "/tasks")
			return
		}
		existing, err := p.h.Tasks.GetByID(ctx, userID, id)
		if err != nil {
			c.Redirect(http.StatusFound, "/tasks")
			return
		}
		task = existing
		isEdit = true
	}

	task.Title = c.PostForm("title")
	task.Description = c.PostForm("description")
	task.EstimatedDuration = c.PostForm("estimated_duration")
	task.Completed = c.PostForm("completed") == "on"

	task.AssignedDate = nil
	if v := c.PostForm("assigned_date"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			p.renderTaskFormError(c, task, "Assigned date must be YYYY-MM-DD")
			return
		}
		task.AssignedDate = &d
	}

	task.ProjectID = nil
	if v := c.PostForm("project_id"); v != "" && v != "0" {
		pid, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			p.renderTaskFormError(c, task, "Invalid project")
			return
		}
		if _, err := p.h.Projects.GetByID(ctx, userID, pid); err != nil {
			p.renderTaskFormError(c, task, "Project not found")
			return
		}
		task.ProjectID = &pid
	}

	if task.Title == "" {
		p.renderTaskFormError(c, task, "Title is required")
		return
	}

	var err error
	if isEdit {
		err = p.h.Tasks.Update(ctx, task)
	} else {
		err = p.h.Tasks.Create(ctx, task)
	}
	if err != nil {
		p.renderTaskFormError(c, task, "Failed to save task")
		return
	}

	c.Redirect(http.StatusFound, "/tasks/"+strconv.FormatInt(task.ID, 10))
}

func (p *Pages) renderTaskFormError(c *gin.Context, task *domain.Task, msg string) {
	projects, _ := p.h.Projects.List(c.Request.Context(), pageUserID(c))
	c.HTML(http.StatusBadRequest, "task_form.html", gin.H{
		"Task":        task,
		"Projects":    projects,
		"Error":       msg,
		"InitialDate": "",
	})
}

func (p *Pages) DeleteTask(c *gin.Context) {
	userID := pageUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil {
		_ = p.h.Tasks.Delete(c.Request.Context(), userID, id)
	}
	c.Redirect(http.StatusFound, "/tasks")
}

func (p *Pages) ToggleTask(c *gin.Context) {
	userID := pageUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil {
		if task, err := p.h.Tasks.GetByID(c.Request.Context(), userID, id); err == nil {
			_, _ = p.h.Tasks.SetCompleted(c.Request.Context(), userID, id, !task.Completed)
		}
	}

	if back := c.PostForm("back"); back != "" {
		c.Redirect(http.StatusFound, back)
		return
	}
	c.Redirect(http.StatusFound, "/tasks")
}
