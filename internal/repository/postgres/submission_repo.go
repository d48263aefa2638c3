package postgres

import (
	"context"
	"errors"
	"time"

	"pathbridge-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgres unique_violation
const uniqueViolationCode = "23505"

type submissionRepo struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *pgxpool.Pool) domain.SubmissionRepository {
	return &submissionRepo{db: db}
}

// Create inserts a new SUBMITTED record. Concurrent duplicates race on the
// (assignment_id, student_id) unique constraint; the loser gets
// domain.ErrDuplicateSubmission and writes nothing.
func (r *submissionRepo) Create(ctx context.Context, s *domain.JobSubmission) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Status == "" {
		s.Status = domain.SubmissionStatusSubmitted
	}

	query := `
		INSERT INTO job_submissions (id, assignment_id, student_id, submission_text, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		s.ID, s.AssignmentID, s.StudentID, s.SubmissionText, s.Status,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return domain.ErrDuplicateSubmission
		}
		return err
	}
	return nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*domain.JobSubmission, error) {
	query := `
		SELECT id, assignment_id, student_id, submission_text, status,
			review_notes, referral_company, created_at, updated_at
		FROM job_submissions
		WHERE id = $1`

	var s domain.JobSubmission
	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.AssignmentID, &s.StudentID, &s.SubmissionText, &s.Status,
		&s.ReviewNotes, &s.ReferralCompany, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FetchByAssignment retrieves all submissions for an assignment with the
// students resolved, newest first. Exposes the student email; callers gate
// this behind assignment ownership.
func (r *submissionRepo) FetchByAssignment(ctx context.Context, assignmentID string) ([]domain.SubmissionWithStudent, error) {
	query := `
		SELECT
			s.id, s.assignment_id, s.student_id, s.submission_text, s.status,
			s.review_notes, s.referral_company, s.created_at, s.updated_at,
			u.id, u.name, u.username, u.image, u.email,
			a.title
		FROM job_submissions s
		JOIN users u ON s.student_id = u.id
		JOIN job_assignments a ON s.assignment_id = a.id
		WHERE s.assignment_id = $1
		ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []domain.SubmissionWithStudent
	for rows.Next() {
		var s domain.SubmissionWithStudent
		if err := rows.Scan(
			&s.ID, &s.AssignmentID, &s.StudentID, &s.SubmissionText, &s.Status,
			&s.ReviewNotes, &s.ReferralCompany, &s.CreatedAt, &s.UpdatedAt,
			&s.Student.ID, &s.Student.Name, &s.Student.Username, &s.Student.Image, &s.StudentEmail,
			&s.AssignmentTitle,
		); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

// FetchByStudent retrieves all of a student's submissions with assignment
// titles, newest first
func (r *submissionRepo) FetchByStudent(ctx context.Context, studentID string) ([]domain.StudentSubmission, error) {
	query := `
		SELECT
			s.id, s.assignment_id, s.student_id, s.submission_text, s.status,
			s.review_notes, s.referral_company, s.created_at, s.updated_at,
			a.title
		FROM job_submissions s
		JOIN job_assignments a ON s.assignment_id = a.id
		WHERE s.student_id = $1
		ORDER BY s.created_at DESC`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []domain.StudentSubmission
	for rows.Next() {
		var s domain.StudentSubmission
		if err := rows.Scan(
			&s.ID, &s.AssignmentID, &s.StudentID, &s.SubmissionText, &s.Status,
			&s.ReviewNotes, &s.ReferralCompany, &s.CreatedAt, &s.UpdatedAt,
			&s.AssignmentTitle,
		); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

// UpdateStatus applies a review decision only while the row is still
// SUBMITTED. The status predicate makes the write a compare-and-set, so two
// concurrent reviewers cannot both win and the referral side effect cannot
// be re-triggered.
func (r *submissionRepo) UpdateStatus(ctx context.Context, id string, decision domain.ReviewDecision) error {
	query := `
		UPDATE job_submissions
		SET status = $2, review_notes = $3, referral_company = $4, updated_at = $5
		WHERE id = $1 AND status = $6`

	result, err := r.db.Exec(ctx, query,
		id, decision.Status, decision.ReviewNotes, decision.ReferralCompany,
		time.Now(), domain.SubmissionStatusSubmitted,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		// Row missing, or already in a terminal state
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrInvalidTransition
	}
	return nil
}
