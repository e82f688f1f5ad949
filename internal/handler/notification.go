package handler

import (
	"net/http"

	"linkup/internal/config"
	"linkup/internal/httputil"
	"linkup/internal/service"
)

// NotificationHandler groups the notification endpoints.
type NotificationHandler struct {
	notificationService *service.NotificationService
	config              *config.Config
}

func NewNotificationHandler(notificationService *service.NotificationService, cfg *config.Config) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService, config: cfg}
}

// List handles GET /api/shownotification. Fetching a page marks it read.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	notifications, pagination, err := h.notificationService.List(r.Context(), userID, page, limit)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Notifications fetched successfully", map[string]interface{}{
		"notifications": notifications,
		"pagination":    pagination,
	})
}

// UnreadCount handles GET /api/notifications/unreadcount: the badge count.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r, h.config.IsDevelopment())
	if !ok {
		return
	}

	count, err := h.notificationService.UnreadCount(r.Context(), userID)
	if err != nil {
		httputil.WriteAppError(w, err, h.config.IsDevelopment())
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, "Unread count fetched successfully", map[string]interface{}{
		"count": count,
	})
}
