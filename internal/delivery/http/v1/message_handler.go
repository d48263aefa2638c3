package v1

import (
	"net/http"

	"pathbridge-backend/internal/delivery/http/response"
	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageUC domain.MessageUsecase
}

// NewMessageHandler registers messaging routes. Sends carry the stricter
// per-user write rate limit.
func NewMessageHandler(protected *gin.RouterGroup, messageUC domain.MessageUsecase, writeLimit gin.HandlerFunc) {
	handler := &MessageHandler{messageUC: messageUC}

	messages := protected.Group("/messages")
	{
		messages.POST("", writeLimit, handler.SendMessage)
		messages.GET("/conversations", handler.GetConversations)
		messages.GET("/unread-count", handler.UnreadCount)
		messages.GET("/thread/:userId", handler.GetThread)
		messages.POST("/thread/:userId/read", handler.MarkRead)
	}
}

// SendMessageRequest is the request payload for sending a direct message
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id" binding:"required"`
	Content    string `json:"content" binding:"required,max=5000"`
}

// SendMessage godoc
// @Summary      Send a direct message
// @Description  Message any user; also appends a MESSAGE notification for the receiver
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      SendMessageRequest  true  "Message data"
// @Success      201   {object}  response.Response{data=domain.Message}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /messages [post]
// @Security     BearerAuth
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	message, err := h.messageUC.SendMessage(c.Request.Context(), req.ReceiverID, req.Content)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Message sent", message)
}

// GetConversations godoc
// @Summary      List conversations
// @Description  All messages involving the caller, newest first; clients group by counterpart
// @Tags         messages
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.MessageWithUsers}
// @Router       /messages/conversations [get]
// @Security     BearerAuth
func (h *MessageHandler) GetConversations(c *gin.Context) {
	messages, err := h.messageUC.GetConversations(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Conversations retrieved", messages)
}

// GetThread godoc
// @Summary      Get a message thread
// @Description  Two-way history with another user, oldest first
// @Tags         messages
// @Produce      json
// @Param        userId  path  string  true  "Other user ID"
// @Success      200  {object}  response.Response{data=[]domain.MessageWithUsers}
// @Router       /messages/thread/{userId} [get]
// @Security     BearerAuth
func (h *MessageHandler) GetThread(c *gin.Context) {
	messages, err := h.messageUC.GetThread(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Thread retrieved", messages)
}

// UnreadCount godoc
// @Summary      Unread message count
// @Description  Polled by clients for the message badge
// @Tags         messages
// @Produce      json
// @Success      200  {object}  response.Response{data=int64}
// @Router       /messages/unread-count [get]
// @Security     BearerAuth
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	count, err := h.messageUC.UnreadMessageCount(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Unread count retrieved", count)
}

// MarkRead godoc
// @Summary      Mark a thread read
// @Description  Flips read on all unread messages from the given sender to the caller
// @Tags         messages
// @Produce      json
// @Param        userId  path  string  true  "Sender user ID"
// @Success      200  {object}  response.Response
// @Router       /messages/thread/{userId}/read [post]
// @Security     BearerAuth
func (h *MessageHandler) MarkRead(c *gin.Context) {
	if err := h.messageUC.MarkMessagesRead(c.Request.Context(), c.Param("userId")); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Messages marked as read", nil)
}
