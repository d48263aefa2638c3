package usecase

import (
	"context"

	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"
	"pathbridge-backend/pkg/logger"
)

type notificationUsecase struct {
	notificationRepo domain.NotificationRepository
	invalidator      domain.ViewInvalidator
}

// NewNotificationUsecase creates a new notification usecase
func NewNotificationUsecase(notificationRepo domain.NotificationRepository, invalidator domain.ViewInvalidator) domain.NotificationUsecase {
	return &notificationUsecase{
		notificationRepo: notificationRepo,
		invalidator:      invalidator,
	}
}

// GetNotifications returns the caller's feed, excluding MESSAGE-type rows,
// newest first. Degrades to an empty feed on failure so the page still
// renders.
func (u *notificationUsecase) GetNotifications(ctx context.Context) ([]domain.NotificationWithRefs, error) {
	userID := callerID(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	notifications, err := u.notificationRepo.FetchForUser(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to fetch notifications", "user_id", userID, "error", err)
		return []domain.NotificationWithRefs{}, nil
	}
	return notifications, nil
}

// UnreadCount returns the caller's unread count, excluding MESSAGE-type
// rows. Degrades to zero on failure so the badge never breaks the page.
func (u *notificationUsecase) UnreadCount(ctx context.Context) (int64, error) {
	userID := callerID(ctx)
	if userID == "" {
		return 0, nil
	}

	count, err := u.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to count unread notifications", "user_id", userID, "error", err)
		return 0, nil
	}
	return count, nil
}

// MarkNotificationsRead flips read on the given ids (scoped to the caller),
// or on all of the caller's unread notifications when ids is empty
func (u *notificationUsecase) MarkNotificationsRead(ctx context.Context, ids []string) error {
	userID := callerID(ctx)
	if userID == "" {
		return apperror.Unauthorized("User not authenticated")
	}

	var err error
	if len(ids) > 0 {
		err = u.notificationRepo.MarkRead(ctx, userID, ids)
	} else {
		err = u.notificationRepo.MarkAllRead(ctx, userID)
	}
	if err != nil {
		return apperror.Internal(err)
	}

	u.invalidator.Invalidate(ctx, domain.ViewNotifications)
	return nil
}
