package domain

import (
	"context"
	"time"
)

// Message is a direct user-to-user text message. Rows are append-only; the
// only mutation is flipping the read flag.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// MessageWithUsers resolves the sender and receiver previews for
// conversation views. Clients group by counterpart.
type MessageWithUsers struct {
	Message
	Sender   UserPreview `json:"sender"`
	Receiver UserPreview `json:"receiver"`
}

type MessageRepository interface {
	Create(ctx context.Context, m *Message) error
	FetchConversations(ctx context.Context, userID string) ([]MessageWithUsers, error)
	FetchThread(ctx context.Context, userID, otherUserID string) ([]MessageWithUsers, error)
	CountUnread(ctx context.Context, receiverID string) (int64, error)
	MarkThreadRead(ctx context.Context, senderID, receiverID string) error
}

type MessageUsecase interface {
	SendMessage(ctx context.Context, receiverID, content string) (*Message, error)
	GetConversations(ctx context.Context) ([]MessageWithUsers, error)
	GetThread(ctx context.Context, otherUserID string) ([]MessageWithUsers, error)
	UnreadMessageCount(ctx context.Context) (int64, error)
	MarkMessagesRead(ctx context.Context, senderID string) error
}
