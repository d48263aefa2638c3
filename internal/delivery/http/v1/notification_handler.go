package v1

import (
	"net/http"

	"pathbridge-backend/internal/delivery/http/response"
	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

// NewNotificationHandler registers notification routes
func NewNotificationHandler(protected *gin.RouterGroup, notificationUC domain.NotificationUsecase) {
	handler := &NotificationHandler{notificationUC: notificationUC}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", handler.List)
		notifications.GET("/unread-count", handler.UnreadCount)
		notifications.POST("/read", handler.MarkRead)
	}
}

// List godoc
// @Summary      List notifications
// @Description  The caller's feed excluding MESSAGE-type rows, newest first
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.NotificationWithRefs}
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notificationUC.GetNotifications(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notifications retrieved", notifications)
}

// UnreadCount godoc
// @Summary      Unread notification count
// @Description  Polled by clients for the bell badge; excludes MESSAGE-type rows
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  response.Response{data=int64}
// @Router       /notifications/unread-count [get]
// @Security     BearerAuth
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationUC.UnreadCount(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Unread count retrieved", count)
}

// MarkReadRequest optionally scopes the read flip to specific notifications
type MarkReadRequest struct {
	IDs []string `json:"ids"`
}

// MarkRead godoc
// @Summary      Mark notifications read
// @Description  Flips read on the given ids, or on all unread when ids is omitted
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body      MarkReadRequest  false  "Notification ids"
// @Success      200   {object}  response.Response
// @Router       /notifications/read [post]
// @Security     BearerAuth
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req MarkReadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.Error(apperror.BadRequest(err.Error()))
			return
		}
	}

	if err := h.notificationUC.MarkNotificationsRead(c.Request.Context(), req.IDs); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Notifications marked as read", nil)
}
