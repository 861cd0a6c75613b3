package pages

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"agenda_backend/internal/domain"
	"agenda_backend/internal/repository"
	"agenda_backend/internal/service"
)

func (p *Pages) ProjectList(c *gin.Context) {
	userID := pageUserID(c)

	projects, err := p.h.Projects.List(c.Request.Context(), userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "projects_list.html", gin.H{"Error": "Failed to load projects"})
		return
	}

	c.HTML(http.StatusOK, "projects_list.html", gin.H{"Projects": projects})
}

func (p *Pages) ProjectDetail(c *gin.Context) {
	userID := pageUserID(c)
	ctx := c.Request.Context()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Redirect(http.StatusFound, "/projects")
		return
	}

	project, err := p.h.Projects.GetByID(ctx, userID, id)
	if err != nil {
		c.Redirect(http.StatusFound, "/projects")
		return
	}

	tasks, _ := p.h.Tasks.List(ctx, userID, repository.TaskFilter{ProjectID: &id})
	stats, _ := p.h.Projects.Stats(ctx, userID, id)

	c.HTML(http.StatusOK, "project_detail.html", gin.H{
		"Project":  project,
		"Tasks":    tasks,
		"Stats":    stats,
		"Progress": service.CalculateProgress(tasks, time.Now()),
	})
}

func (p *Pages) ProjectForm(c *gin.Context) {
	userID := pageUserID(c)

	var project *domain.Project
	if idStr := c.Param("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			c.Redirect(http.StatusFound, "/projects")
			return
		}
		project, err = p.h.Projects.GetByID(c.Request.Context(), userID, id)
		if err != nil {
			c.Redirect(http.StatusFound, "/projects")
			return
		}
	}

	c.HTML(http.StatusOK, "project_form.html", gin.H{"Project": project})
}

func (p *Pages) SaveProject(c *gin.Context) {
	userID := pageUserID(c)
	ctx := c.Request.Context()

	project := &domain.Project{UserID: userID}
	isEdit := false
	if idStr := c.Param("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			c.Redirect(http.StatusFound, "/projects")
			return
		}
		existing, err := p.h.Projects.GetByID(ctx, userID, id)
		if err != nil {
			c.Redirect(http.StatusFound, "/projects")
			return
		}
		project = existing
		isEdit = true
	}

	project.Name = c.PostForm("name")
	project.Description = c.PostForm("description")
	project.EstimatedDuration = c.PostForm("estimated_duration")

	project.Status = c.PostForm("status")
	if project.Status == "" {
		project.Status = domain.ProjectStatusPlanned
	}

	if project.Name == "" || !domain.ValidProjectStatus(project.Status) {
		c.HTML(http.StatusBadRequest, "project_form.html", gin.H{
			"Project": project,
			"Error":   "Name is required and status must be valid",
		})
		return
	}

	project.StartDate = nil
	if v := c.PostForm("start_date"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			c.HTML(http.StatusBadRequest, "project_form.html", gin.H{
				"Project": project, "Error": "Start date must be YYYY-MM-DD",
			})
			return
		}
		project.StartDate = &d
	}
	project.EstimatedEndDate = nil
	if v := c.PostForm("estimated_end_date"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			c.HTML(http.StatusBadRequest, "project_form.html", gin.H{
				"Project": project, "Error": "End date must be YYYY-MM-DD",
			})
			return
		}
		project.EstimatedEndDate = &d
	}

	var err error
	if isEdit {
		err = p.h.Projects.Update(ctx, project)
	} else {
		err = p.h.Projects.Create(ctx, project)
	}
	if err != nil {
		c.HTML(http.StatusInternalServerError, "project_form.html", gin.H{
			"Project": project, "Error": "Failed to save project",
		})
		return
	}

	c.Redirect(http.StatusFound, "/projects/"+strconv.FormatInt(project.ID, 10))
}

func (p *Pages) DeleteProject(c *gin.Context) {
	userID := pageUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil {
		_ = p.h.Projects.Delete(c.Request.Context(), userID, id)
	}
	c.Redirect(http.StatusFound, "/projects")
}
