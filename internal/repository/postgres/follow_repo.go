package postgres

import (
	"context"

	"pathbridge-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type followRepo struct {
	db *pgxpool.Pool
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *pgxpool.Pool) domain.FollowRepository {
	return &followRepo{db: db}
}

func (r *followRepo) Exists(ctx context.Context, followerID, followingID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, followerID, followingID).Scan(&exists)
	return exists, err
}

func (r *followRepo) Create(ctx context.Context, followerID, followingID string) error {
	query := `INSERT INTO follows (follower_id, following_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	_, err := r.db.Exec(ctx, query, followerID, followingID)
	return err
}

func (r *followRepo) Delete(ctx context.Context, followerID, followingID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`
	_, err := r.db.Exec(ctx, query, followerID, followingID)
	return err
}

// FetchNetwork returns the union of users the caller follows and users
// following the caller, deduplicated
func (r *followRepo) FetchNetwork(ctx context.Context, userID string) ([]domain.UserPreview, error) {
	query := `
		SELECT DISTINCT u.id, u.name, u.username, u.image
		FROM users u
		JOIN follows f ON (f.following_id = u.id AND f.follower_id = $1)
		             OR (f.follower_id = u.id AND f.following_id = $1)
		ORDER BY u.name ASC`

	return r.queryPreviews(ctx, query, userID)
}

// FetchSuggestions returns users the caller does not follow yet, excluding
// the caller
func (r *followRepo) FetchSuggestions(ctx context.Context, userID string, limit int) ([]domain.UserPreview, error) {
	query := `
		SELECT u.id, u.name, u.username, u.image
		FROM users u
		WHERE u.id <> $1
		  AND NOT EXISTS (
			SELECT 1 FROM follows f WHERE f.follower_id = $1 AND f.following_id = u.id
		  )
		ORDER BY u.created_at DESC
		LIMIT $2`

	return r.queryPreviews(ctx, query, userID, limit)
}

func (r *followRepo) queryPreviews(ctx context.Context, query string, args ...any) ([]domain.UserPreview, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.UserPreview
	for rows.Next() {
		var u domain.UserPreview
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Image); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
