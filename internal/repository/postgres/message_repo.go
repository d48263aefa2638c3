package postgres

import (
	"context"
	"time"

	"pathbridge-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type messageRepo struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *pgxpool.Pool) domain.MessageRepository {
	return &messageRepo{db: db}
}

// Create inserts a new message
func (r *messageRepo) Create(ctx context.Context, m *domain.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = time.Now()

	query := `
		INSERT INTO messages (id, sender_id, receiver_id, content, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		m.ID, m.SenderID, m.ReceiverID, m.Content, m.Read, m.CreatedAt,
	)
	return err
}

// FetchConversations retrieves all messages involving the user with both
// parties resolved, newest first. The client groups them by counterpart.
func (r *messageRepo) FetchConversations(ctx context.Context, userID string) ([]domain.MessageWithUsers, error) {
	query := `
		SELECT
			m.id, m.sender_id, m.receiver_id, m.content, m.read, m.created_at,
			s.id, s.name, s.username, s.image,
			rcv.id, rcv.name, rcv.username, rcv.image
		FROM messages m
		JOIN users s ON m.sender_id = s.id
		JOIN users rcv ON m.receiver_id = rcv.id
		WHERE m.sender_id = $1 OR m.receiver_id = $1
		ORDER BY m.created_at DESC`

	return r.queryMessages(ctx, query, userID)
}

// FetchThread retrieves the two-way message history between two users,
// oldest first
func (r *messageRepo) FetchThread(ctx context.Context, userID, otherUserID string) ([]domain.MessageWithUsers, error) {
	query := `
		SELECT
			m.id, m.sender_id, m.receiver_id, m.content, m.read, m.created_at,
			s.id, s.name, s.username, s.image,
			rcv.id, rcv.name, rcv.username, rcv.image
		FROM messages m
		JOIN users s ON m.sender_id = s.id
		JOIN users rcv ON m.receiver_id = rcv.id
		WHERE (m.sender_id = $1 AND m.receiver_id = $2)
		   OR (m.sender_id = $2 AND m.receiver_id = $1)
		ORDER BY m.created_at ASC`

	return r.queryMessages(ctx, query, userID, otherUserID)
}

func (r *messageRepo) queryMessages(ctx context.Context, query string, args ...any) ([]domain.MessageWithUsers, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.MessageWithUsers
	for rows.Next() {
		var m domain.MessageWithUsers
		if err := rows.Scan(
			&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read, &m.CreatedAt,
			&m.Sender.ID, &m.Sender.Name, &m.Sender.Username, &m.Sender.Image,
			&m.Receiver.ID, &m.Receiver.Name, &m.Receiver.Username, &m.Receiver.Image,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// CountUnread counts unread messages addressed to the receiver
func (r *messageRepo) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	query := `SELECT COUNT(*) FROM messages WHERE receiver_id = $1 AND read = FALSE`
	var count int64
	err := r.db.QueryRow(ctx, query, receiverID).Scan(&count)
	return count, err
}

// MarkThreadRead flips the read flag on unread messages from one sender to
// one receiver
func (r *messageRepo) MarkThreadRead(ctx context.Context, senderID, receiverID string) error {
	query := `UPDATE messages SET read = TRUE WHERE sender_id = $1 AND receiver_id = $2 AND read = FALSE`
	_, err := r.db.Exec(ctx, query, senderID, receiverID)
	return err
}
