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

type assignmentRepo struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *pgxpool.Pool) domain.AssignmentRepository {
	return &assignmentRepo{db: db}
}

// Create inserts a new immutable assignment record
func (r *assignmentRepo) Create(ctx context.Context, a *domain.JobAssignment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = time.Now()
	if a.SkillsRequired == nil {
		a.SkillsRequired = []string{}
	}

	query := `
		INSERT INTO job_assignments (id, title, description, deadline, assignment_type, skills_required, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Exec(ctx, query,
		a.ID, a.Title, a.Description, a.Deadline, a.AssignmentType,
		a.SkillsRequired, a.CreatedByID, a.CreatedAt,
	)
	return err
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*domain.JobAssignment, error) {
	query := `
		SELECT id, title, description, deadline, assignment_type, skills_required, created_by, created_at
		FROM job_assignments
		WHERE id = $1`

	var a domain.JobAssignment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.Title, &a.Description, &a.Deadline, &a.AssignmentType,
		&a.SkillsRequired, &a.CreatedByID, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// FetchAll retrieves every assignment with creator preview and submission
// count, newest first. Ownership flags are filled by the usecase because
// they are caller-relative.
func (r *assignmentRepo) FetchAll(ctx context.Context) ([]domain.AssignmentWithMeta, error) {
	query := `
		SELECT
			a.id, a.title, a.description, a.deadline, a.assignment_type,
			a.skills_required, a.created_by, a.created_at,
			u.id, u.name, u.username, u.image,
			(SELECT COUNT(*) FROM job_submissions s WHERE s.assignment_id = a.id) AS submission_count
		FROM job_assignments a
		JOIN users u ON a.created_by = u.id
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.AssignmentWithMeta
	for rows.Next() {
		var a domain.AssignmentWithMeta
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Description, &a.Deadline, &a.AssignmentType,
			&a.SkillsRequired, &a.CreatedByID, &a.CreatedAt,
			&a.CreatedBy.ID, &a.CreatedBy.Name, &a.CreatedBy.Username, &a.CreatedBy.Image,
			&a.SubmissionCount,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// FetchByCreator retrieves the creator's assignments with their submissions
// and student authors nested, newest first
func (r *assignmentRepo) FetchByCreator(ctx context.Context, creatorID string) ([]domain.OwnedAssignment, error) {
	query := `
		SELECT
			a.id, a.title, a.description, a.deadline, a.assignment_type,
			a.skills_required, a.created_by, a.created_at,
			(SELECT COUNT(*) FROM job_submissions s WHERE s.assignment_id = a.id) AS submission_count
		FROM job_assignments a
		WHERE a.created_by = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []domain.OwnedAssignment
	index := map[string]int{}
	var ids []string
	for rows.Next() {
		var a domain.OwnedAssignment
		if err := rows.Scan(
			&a.ID, &a.Title, &a.Description, &a.Deadline, &a.AssignmentType,
			&a.SkillsRequired, &a.CreatedByID, &a.CreatedAt,
			&a.SubmissionCount,
		); err != nil {
			return nil, err
		}
		a.Submissions = []domain.SubmissionWithStudent{}
		index[a.ID] = len(assignments)
		ids = append(ids, a.ID)
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(assignments) == 0 {
		return assignments, nil
	}

	subQuery := `
		SELECT
			s.id, s.assignment_id, s.student_id, s.submission_text, s.status,
			s.review_notes, s.referral_company, s.created_at, s.updated_at,
			u.id, u.name, u.username, u.image, u.email,
			a.title
		FROM job_submissions s
		JOIN users u ON s.student_id = u.id
		JOIN job_assignments a ON s.assignment_id = a.id
		WHERE s.assignment_id = ANY($1)
		ORDER BY s.created_at DESC`

	subRows, err := r.db.Query(ctx, subQuery, ids)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()

	for subRows.Next() {
		var s domain.SubmissionWithStudent
		if err := subRows.Scan(
			&s.ID, &s.AssignmentID, &s.StudentID, &s.SubmissionText, &s.Status,
			&s.ReviewNotes, &s.ReferralCompany, &s.CreatedAt, &s.UpdatedAt,
			&s.Student.ID, &s.Student.Name, &s.Student.Username, &s.Student.Image, &s.StudentEmail,
			&s.AssignmentTitle,
		); err != nil {
			return nil, err
		}
		if i, ok := index[s.AssignmentID]; ok {
			assignments[i].Submissions = append(assignments[i].Submissions, s)
		}
	}
	return assignments, subRows.Err()
}
