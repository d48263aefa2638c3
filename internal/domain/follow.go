package domain

import (
	"context"
	"time"
)

type Follow struct {
	FollowerID  string    `json:"follower_id"`
	FollowingID string    `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type FollowRepository interface {
	Exists(ctx context.Context, followerID, followingID string) (bool, error)
	Create(ctx context.Context, followerID, followingID string) error
	Delete(ctx context.Context, followerID, followingID string) error
	// FetchNetwork returns users the caller follows plus users following the
	// caller, deduplicated.
	FetchNetwork(ctx context.Context, userID string) ([]UserPreview, error)
	FetchSuggestions(ctx context.Context, userID string, limit int) ([]UserPreview, error)
}

type FollowUsecase interface {
	// ToggleFollow follows the target if not yet followed (creating a FOLLOW
	// notification), otherwise unfollows. Returns true when now following.
	ToggleFollow(ctx context.Context, targetUserID string) (bool, error)
	GetNetwork(ctx context.Context) ([]UserPreview, error)
	GetSuggestedUsers(ctx context.Context) ([]UserPreview, error)
}
