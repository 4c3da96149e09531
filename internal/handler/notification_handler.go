package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docflow/internal/service"
)

// NotificationHandler serves the notification inbox endpoints.
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

type markReadRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

// List lists the acting user's notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	unreadOnly := c.Query("unread") == "true"
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	notifications, total, err := h.notificationSvc.ListNotifications(c.Request.Context(), actorID, unreadOnly, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, notifications, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// UnreadCount returns the acting user's unread notification count.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	count, err := h.notificationSvc.CountUnread(c.Request.Context(), actorID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"unread": count})
}

// MarkRead marks the given notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actorID, _, ok := extractActor(c)
	if !ok {
		return
	}
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if err := h.notificationSvc.MarkRead(c.Request.Context(), actorID, req.IDs); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"marked": len(req.IDs)})
}
