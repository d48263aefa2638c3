package domain

import (
	"context"
	"time"
)

// Submission status lifecycle: SUBMITTED -> REVIEWED | REFERRED | REJECTED.
// The three review outcomes are terminal.
const (
	SubmissionStatusSubmitted = "SUBMITTED"
	SubmissionStatusReviewed  = "REVIEWED"
	SubmissionStatusReferred  = "REFERRED"
	SubmissionStatusRejected  = "REJECTED"
)

// submissionTransitions is the explicit transition table. Terminal states
// have no outgoing edges, so a review decision can never be re-applied and
// its side effects can never fire twice.
var submissionTransitions = map[string]map[string]bool{
	SubmissionStatusSubmitted: {
		SubmissionStatusReviewed: true,
		SubmissionStatusReferred: true,
		SubmissionStatusRejected: true,
	},
}

// CanTransition reports whether a submission may move from one status to
// another.
func CanTransition(from, to string) bool {
	return submissionTransitions[from][to]
}

// IsReviewStatus reports whether s is a valid review outcome.
func IsReviewStatus(s string) bool {
	return s == SubmissionStatusReviewed || s == SubmissionStatusReferred || s == SubmissionStatusRejected
}

type JobSubmission struct {
	ID              string    `json:"id"`
	AssignmentID    string    `json:"assignment_id"`
	StudentID       string    `json:"student_id"`
	SubmissionText  string    `json:"submission_text"`
	Status          string    `json:"status"`
	ReviewNotes     *string   `json:"review_notes,omitempty"`
	ReferralCompany *string   `json:"referral_company,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SubmissionWithStudent is the owner-facing view. The student's email is
// exposed here because only the assignment owner may see it.
type SubmissionWithStudent struct {
	JobSubmission
	Student         UserPreview `json:"student"`
	StudentEmail    string      `json:"student_email"`
	AssignmentTitle string      `json:"assignment_title"`
}

// StudentSubmission is the student's own view of a submission.
type StudentSubmission struct {
	JobSubmission
	AssignmentTitle string `json:"assignment_title"`
}

// ReviewDecision carries an alumnus review of a submission.
type ReviewDecision struct {
	Status          string
	ReviewNotes     *string
	ReferralCompany *string
}

type SubmissionRepository interface {
	// Create persists a new SUBMITTED record. A unique index on
	// (assignment_id, student_id) decides concurrent duplicates; the loser
	// gets ErrDuplicateSubmission.
	Create(ctx context.Context, s *JobSubmission) error
	GetByID(ctx context.Context, id string) (*JobSubmission, error)
	FetchByAssignment(ctx context.Context, assignmentID string) ([]SubmissionWithStudent, error)
	FetchByStudent(ctx context.Context, studentID string) ([]StudentSubmission, error)
	// UpdateStatus applies a review decision only when the row is still
	// SUBMITTED; returns ErrInvalidTransition if a concurrent reviewer won.
	UpdateStatus(ctx context.Context, id string, decision ReviewDecision) error
}

type SubmissionUsecase interface {
	SubmitAssignment(ctx context.Context, assignmentID, submissionText string) (*JobSubmission, error)
	ListSubmissions(ctx context.Context, assignmentID string) ([]SubmissionWithStudent, error)
	GetMySubmissions(ctx context.Context) ([]StudentSubmission, error)
	UpdateSubmissionStatus(ctx context.Context, submissionID string, decision ReviewDecision) (*JobSubmission, error)
}
