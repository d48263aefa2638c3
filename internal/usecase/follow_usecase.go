package usecase

import (
	"context"
	"errors"

	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"
	"pathbridge-backend/pkg/logger"
)

const suggestedUsersLimit = 3

type followUsecase struct {
	followRepo       domain.FollowRepository
	notificationRepo domain.NotificationRepository
	userRepo         domain.UserRepository
	invalidator      domain.ViewInvalidator
}

// NewFollowUsecase creates a new follow usecase
func NewFollowUsecase(
	followRepo domain.FollowRepository,
	notificationRepo domain.NotificationRepository,
	userRepo domain.UserRepository,
	invalidator domain.ViewInvalidator,
) domain.FollowUsecase {
	return &followUsecase{
		followRepo:       followRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		invalidator:      invalidator,
	}
}

// ToggleFollow unfollows the target if already following, otherwise follows
// and appends a FOLLOW notification. Returns true when now following.
func (u *followUsecase) ToggleFollow(ctx context.Context, targetUserID string) (bool, error) {
	userID := callerID(ctx)
	if userID == "" {
		return false, apperror.Unauthorized("User not authenticated")
	}
	if targetUserID == userID {
		return false, apperror.BadRequest("You cannot follow yourself")
	}

	if _, err := u.userRepo.GetByID(ctx, targetUserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, apperror.NotFound("User not found")
		}
		return false, apperror.Internal(err)
	}

	following, err := u.followRepo.Exists(ctx, userID, targetUserID)
	if err != nil {
		return false, apperror.Internal(err)
	}

	if following {
		if err := u.followRepo.Delete(ctx, userID, targetUserID); err != nil {
			return false, apperror.Internal(err)
		}
		u.invalidator.Invalidate(ctx, domain.ViewHome)
		return false, nil
	}

	if err := u.followRepo.Create(ctx, userID, targetUserID); err != nil {
		return false, apperror.Internal(err)
	}

	notification := &domain.Notification{
		UserID:    targetUserID,
		CreatorID: userID,
		Type:      domain.NotificationFollow,
	}
	if err := u.notificationRepo.Create(ctx, notification); err != nil {
		logger.Log.Error("failed to create follow notification", "target", targetUserID, "error", err)
	}

	u.invalidator.Invalidate(ctx, domain.ViewHome, domain.ViewNotifications)
	return true, nil
}

// GetNetwork returns the caller's network: followed users plus followers,
// deduplicated. Degrades to an empty list on failure.
func (u *followUsecase) GetNetwork(ctx context.Context) ([]domain.UserPreview, error) {
	userID := callerID(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	users, err := u.followRepo.FetchNetwork(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to fetch network", "user_id", userID, "error", err)
		return []domain.UserPreview{}, nil
	}
	return users, nil
}

// GetSuggestedUsers returns a few users the caller does not follow yet.
// Degrades to an empty list on failure.
func (u *followUsecase) GetSuggestedUsers(ctx context.Context) ([]domain.UserPreview, error) {
	userID := callerID(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	users, err := u.followRepo.FetchSuggestions(ctx, userID, suggestedUsersLimit)
	if err != nil {
		logger.Log.Error("failed to fetch suggested users", "user_id", userID, "error", err)
		return []domain.UserPreview{}, nil
	}
	return users, nil
}
