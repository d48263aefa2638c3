package postgres

import (
	"context"
	"time"

	"pathbridge-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *pgxpool.Pool) domain.NotificationRepository {
	return &notificationRepo{db: db}
}

// Create appends a new notification
func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now()

	query := `
		INSERT INTO notifications (id, user_id, creator_id, type, post_id, comment_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		n.ID, n.UserID, n.CreatorID, n.Type, n.PostID, n.CommentID, n.Read, n.CreatedAt,
	)
	return err
}

// FetchForUser retrieves the user's feed excluding MESSAGE-type rows, newest
// first, with actor and referenced post/comment previews resolved
func (r *notificationRepo) FetchForUser(ctx context.Context, userID string) ([]domain.NotificationWithRefs, error) {
	query := `
		SELECT
			n.id, n.user_id, n.creator_id, n.type, n.post_id, n.comment_id, n.read, n.created_at,
			u.id, u.name, u.username, u.image,
			p.id, p.content, p.image,
			c.id, c.content
		FROM notifications n
		JOIN users u ON n.creator_id = u.id
		LEFT JOIN posts p ON n.post_id = p.id
		LEFT JOIN comments c ON n.comment_id = c.id
		WHERE n.user_id = $1 AND n.type <> $2
		ORDER BY n.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID, domain.NotificationMessage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []domain.NotificationWithRefs
	for rows.Next() {
		var n domain.NotificationWithRefs
		var postID, postContent, postImage *string
		var commentID, commentContent *string
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.CreatorID, &n.Type, &n.PostID, &n.CommentID, &n.Read, &n.CreatedAt,
			&n.Creator.ID, &n.Creator.Name, &n.Creator.Username, &n.Creator.Image,
			&postID, &postContent, &postImage,
			&commentID, &commentContent,
		); err != nil {
			return nil, err
		}
		if postID != nil {
			n.Post = &domain.PostPreview{ID: *postID, Content: *postContent, Image: postImage}
		}
		if commentID != nil {
			n.Comment = &domain.CommentPreview{ID: *commentID, Content: *commentContent}
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountUnread counts unread non-MESSAGE notifications
func (r *notificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = $1 AND read = FALSE AND type <> $2`

	var count int64
	err := r.db.QueryRow(ctx, query, userID, domain.NotificationMessage).Scan(&count)
	return count, err
}

// MarkRead flips read on the given ids, scoped to the owning user
func (r *notificationRepo) MarkRead(ctx context.Context, userID string, ids []string) error {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND id = ANY($2)`
	_, err := r.db.Exec(ctx, query, userID, ids)
	return err
}

// MarkAllRead flips read on every unread notification of the user
func (r *notificationRepo) MarkAllRead(ctx context.Context, userID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}
