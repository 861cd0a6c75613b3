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

type notificationResponse struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Kind      string     `json:"kind"`
	Level     string     `json:"level"`
	Read      bool       `json:"read"`
	TaskID    *int64     `json:"task_id,omitempty"`
	ProjectID *int64     `json:"project_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func newNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Kind:      n.Kind,
		Level:     n.Level,
		Read:      n.Read,
		TaskID:    n.TaskID,
		ProjectID: n.ProjectID,
		CreatedAt: n.CreatedAt,
		ExpiresAt: n.ExpiresAt,
	}
}

func (h *Handler) ListNotifications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	notifications, err := h.Notifications.ListActive(c.Request.Context(), userID, time.Now())
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to list notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notifications"})
		return
	}

	resp := make([]notificationResponse, 0, len(notifications))
	for _, n := range notifications {
		resp = append(resp, newNotificationResponse(n))
	}
	c.JSON(http.StatusOK, gin.H{"notifications": resp})
}

// GenerateNotifications runs the analysis engine and returns whatever it
// created this round.
func (h *Handler) GenerateNotifications(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	created, err := h.Notifier.Generate(c.Request.Context(), userID, time.Now())
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to generate notifications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate notifications"})
		return
	}

	resp := make([]notificationResponse, 0, len(created))
	for _, n := range created {
		resp = append(resp, newNotificationResponse(n))
	}
	c.JSON(http.StatusOK, gin.H{"created": resp})
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.Notifications.MarkRead(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		h.Logger.Error().Err(err).Msg("failed to mark notification read")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update notification"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	if err := h.Notifications.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
			return
		}
		h.Logger.Error().Err(err).Msg("failed to delete notification")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete notification"})
		return
	}

	c.Status(http.StatusNoContent)
}
