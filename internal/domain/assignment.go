package domain

import (
	"context"
	"time"
)

// JobAssignment is an alumni-posted assignment. Records are immutable once
// created; "open" vs "closed" is derived from the deadline, never stored.
type JobAssignment struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Deadline       time.Time `json:"deadline"`
	AssignmentType string    `json:"assignment_type"`
	SkillsRequired []string  `json:"skills_required"`
	CreatedByID    string    `json:"created_by_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// AssignmentWithMeta annotates an assignment for the public listing:
// creator preview, submission count, and a caller-relative ownership flag.
type AssignmentWithMeta struct {
	JobAssignment
	CreatedBy       UserPreview `json:"created_by"`
	SubmissionCount int64       `json:"submission_count"`
	IsOwner         bool        `json:"is_owner"`
}

// OwnedAssignment is the owner's view: assignment plus its submissions with
// the submitting students resolved.
type OwnedAssignment struct {
	JobAssignment
	SubmissionCount int64                   `json:"submission_count"`
	Submissions     []SubmissionWithStudent `json:"submissions"`
}

type AssignmentRepository interface {
	Create(ctx context.Context, a *JobAssignment) error
	GetByID(ctx context.Context, id string) (*JobAssignment, error)
	FetchAll(ctx context.Context) ([]AssignmentWithMeta, error)
	FetchByCreator(ctx context.Context, creatorID string) ([]OwnedAssignment, error)
}

type AssignmentUsecase interface {
	CreateAssignment(ctx context.Context, a *JobAssignment) (*JobAssignment, error)
	ListAssignments(ctx context.Context) ([]AssignmentWithMeta, error)
	ListMyAssignments(ctx context.Context) ([]OwnedAssignment, error)
}
