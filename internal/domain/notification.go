package domain

import (
	"context"
	"time"
)

// Notification types
const (
	NotificationFollow  = "FOLLOW"
	NotificationMessage = "MESSAGE"
	NotificationLike    = "LIKE"
	NotificationComment = "COMMENT"
)

// Notification is an append-only event addressed to a user. MESSAGE-type
// rows are excluded from the notification feed; the unread message badge is
// tracked separately off the messages table.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatorID string    `json:"creator_id"`
	Type      string    `json:"type"`
	PostID    *string   `json:"post_id,omitempty"`
	CommentID *string   `json:"comment_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// PostPreview is the referenced-post snippet shown in the feed.
type PostPreview struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	Image   *string `json:"image,omitempty"`
}

// CommentPreview is the referenced-comment snippet shown in the feed.
type CommentPreview struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// NotificationWithRefs resolves the actor and any referenced post/comment.
type NotificationWithRefs struct {
	Notification
	Creator UserPreview     `json:"creator"`
	Post    *PostPreview    `json:"post,omitempty"`
	Comment *CommentPreview `json:"comment,omitempty"`
}

type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	// FetchForUser returns the user's notifications excluding MESSAGE type,
	// newest first.
	FetchForUser(ctx context.Context, userID string) ([]NotificationWithRefs, error)
	// CountUnread counts unread notifications excluding MESSAGE type.
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID string, ids []string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type NotificationUsecase interface {
	GetNotifications(ctx context.Context) ([]NotificationWithRefs, error)
	UnreadCount(ctx context.Context) (int64, error)
	MarkNotificationsRead(ctx context.Context, ids []string) error
}
