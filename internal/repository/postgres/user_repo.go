package postgres

import (
	"context"
	"errors"
	"time"

	"pathbridge-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `
	id, email, username, name, role, bio, image, location, website,
	institution, degree, department, year_of_study, graduation_year,
	current_position, current_organization, skills, interests,
	linkedin_url, github_url, portfolio_url, resume_url,
	mentorship_status, created_at, updated_at`

type userRepo struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Username, &u.Name, &u.Role, &u.Bio, &u.Image,
		&u.Location, &u.Website, &u.Institution, &u.Degree, &u.Department,
		&u.YearOfStudy, &u.GraduationYear, &u.CurrentPosition,
		&u.CurrentOrganization, &u.Skills, &u.Interests, &u.LinkedinURL,
		&u.GithubURL, &u.PortfolioURL, &u.ResumeURL, &u.MentorshipStatus,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user
func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}
	if user.MentorshipStatus == "" {
		user.MentorshipStatus = domain.MentorshipNone
	}
	if user.Skills == nil {
		user.Skills = []string{}
	}
	if user.Interests == nil {
		user.Interests = []string{}
	}

	query := `
		INSERT INTO users (
			id, email, username, name, role, bio, image, location, website,
			institution, degree, department, year_of_study, graduation_year,
			current_position, current_organization, skills, interests,
			linkedin_url, github_url, portfolio_url, resume_url,
			mentorship_status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)`

	_, err := r.db.Exec(ctx, query,
		user.ID, user.Email, user.Username, user.Name, user.Role, user.Bio,
		user.Image, user.Location, user.Website, user.Institution,
		user.Degree, user.Department, user.YearOfStudy, user.GraduationYear,
		user.CurrentPosition, user.CurrentOrganization, user.Skills,
		user.Interests, user.LinkedinURL, user.GithubURL, user.PortfolioURL,
		user.ResumeURL, user.MentorshipStatus, user.CreatedAt, user.UpdatedAt,
	)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(ctx, query, email))
}

// Update writes the mutable profile attributes
func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	query := `
		UPDATE users SET
			name = $2, bio = $3, image = $4, location = $5, website = $6,
			degree = $7, department = $8, year_of_study = $9,
			graduation_year = $10, current_position = $11,
			current_organization = $12, skills = $13, interests = $14,
			linkedin_url = $15, github_url = $16, portfolio_url = $17,
			resume_url = $18, mentorship_status = $19, updated_at = $20
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query,
		user.ID, user.Name, user.Bio, user.Image, user.Location,
		user.Website, user.Degree, user.Department, user.YearOfStudy,
		user.GraduationYear, user.CurrentPosition, user.CurrentOrganization,
		user.Skills, user.Interests, user.LinkedinURL, user.GithubURL,
		user.PortfolioURL, user.ResumeURL, user.MentorshipStatus,
		user.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FetchAllExcept returns previews of every user except the given one
func (r *userRepo) FetchAllExcept(ctx context.Context, excludeID string) ([]domain.UserPreview, error) {
	query := `
		SELECT id, name, username, image
		FROM users
		WHERE id <> $1
		ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query, excludeID)
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

// FetchByRoleAndInstitution lists users of a role within an institution,
// newest first
func (r *userRepo) FetchByRoleAndInstitution(ctx context.Context, role, institution string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE role = $1 AND institution = $2
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, role, institution)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// CountRelations returns follower and following counts for a user
func (r *userRepo) CountRelations(ctx context.Context, userID string) (int64, int64, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM follows WHERE following_id = $1),
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1)`

	var followers, following int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&followers, &following); err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
