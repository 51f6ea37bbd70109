package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yaseenferoz/virl-backend/internal/service"
)

// NotificationHandler notification endpoints shared across roles
type NotificationHandler struct {
	notificationSvc *service.NotificationService
}

func NewNotificationHandler(notificationSvc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List returns the authenticated user's notifications, newest first
// GET /api/{role}/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.notificationSvc.ListForUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"items": items})
}

// MarkRead marks one of the user's notifications as read
// PUT /api/{role}/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		BadRequest(c, "missing notification id")
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), GetUserID(c), id); err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{"message": "Notification marked as read"})
}
