package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/souqsyria/backend/internal/middleware"
	"github.com/souqsyria/backend/internal/services/notification"
)

// NotificationHandler handles user notification requests
type NotificationHandler struct {
	notificationSvc *notification.Service
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationSvc *notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// List handles GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := h.notificationSvc.ListForUser(c.Request.Context(), userID, unreadOnly, page, pageSize)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"total":         total,
		"page":          page,
		"page_size":     pageSize,
	})
}

// MarkRead handles PUT /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized", "error_ar": "غير مصرح"})
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.RespondValidationError(c, err)
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
		middleware.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
