package usecase

import (
	"context"
	"errors"
	"strings"

	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"
	"pathbridge-backend/pkg/logger"
)

type messageUsecase struct {
	messageRepo      domain.MessageRepository
	notificationRepo domain.NotificationRepository
	userRepo         domain.UserRepository
	invalidator      domain.ViewInvalidator
}

// NewMessageUsecase creates a new message usecase
func NewMessageUsecase(
	messageRepo domain.MessageRepository,
	notificationRepo domain.NotificationRepository,
	userRepo domain.UserRepository,
	invalidator domain.ViewInvalidator,
) domain.MessageUsecase {
	return &messageUsecase{
		messageRepo:      messageRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		invalidator:      invalidator,
	}
}

// SendMessage persists a message and its paired MESSAGE-type notification.
// Any authenticated caller may message any existing user; there is no
// relationship requirement.
func (u *messageUsecase) SendMessage(ctx context.Context, receiverID, content string) (*domain.Message, error) {
	userID := callerID(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	if strings.TrimSpace(content) == "" {
		return nil, apperror.BadRequest("Message content is required")
	}

	if _, err := u.userRepo.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Recipient not found")
		}
		return nil, apperror.Internal(err)
	}

	message := &domain.Message{
		SenderID:   userID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := u.messageRepo.Create(ctx, message); err != nil {
		return nil, apperror.Internal(err)
	}

	notification := &domain.Notification{
		UserID:    receiverID,
		CreatorID: userID,
		Type:      domain.NotificationMessage,
	}
	if err := u.notificationRepo.Create(ctx, notification); err != nil {
		// Message is already committed; the badge just lags until the next
		// poll of the messages list.
		logger.Log.Error("failed to create message notification", "message_id", message.ID, "error", err)
	}

	u.invalidator.Invalidate(ctx, domain.ViewMessages, domain.ViewNotifications)
	return message, nil
}

// GetConversations returns all messages involving the caller, newest first.
// Degrades to an empty list on failure so the page still renders.
func (u *messageUsecase) GetConversations(ctx context.Context) ([]domain.MessageWithUsers, error) {
	userID := callerID(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	messages, err := u.messageRepo.FetchConversations(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to fetch conversations", "user_id", userID, "error", err)
		return []domain.MessageWithUsers{}, nil
	}
	return messages, nil
}

// GetThread returns the history between the caller and another user, oldest
// first. Degrades to an empty thread on failure.
func (u *messageUsecase) GetThread(ctx context.Context, otherUserID string) ([]domain.MessageWithUsers, error) {
	userID := callerID(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	messages, err := u.messageRepo.FetchThread(ctx, userID, otherUserID)
	if err != nil {
		logger.Log.Error("failed to fetch thread", "user_id", userID, "other_user_id", otherUserID, "error", err)
		return []domain.MessageWithUsers{}, nil
	}
	return messages, nil
}

// UnreadMessageCount returns the caller's unread message count. Degrades to
// zero on failure so the badge never breaks the page.
func (u *messageUsecase) UnreadMessageCount(ctx context.Context) (int64, error) {
	userID := callerID(ctx)
	if userID == "" {
		return 0, nil
	}

	count, err := u.messageRepo.CountUnread(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to count unread messages", "user_id", userID, "error", err)
		return 0, nil
	}
	return count, nil
}

// MarkMessagesRead flips the read flag on every unread message from the
// given sender to the caller
func (u *messageUsecase) MarkMessagesRead(ctx context.Context, senderID string) error {
	userID := callerID(ctx)
	if userID == "" {
		return apperror.Unauthorized("User not authenticated")
	}

	if err := u.messageRepo.MarkThreadRead(ctx, senderID, userID); err != nil {
		return apperror.Internal(err)
	}

	u.invalidator.Invalidate(ctx, domain.ViewMessages)
	return nil
}
