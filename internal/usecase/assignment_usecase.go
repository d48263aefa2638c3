package usecase

import (
	"context"
	"strings"
	"time"

	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"
	"pathbridge-backend/pkg/logger"
)

type assignmentUsecase struct {
	assignmentRepo domain.AssignmentRepository
	invalidator    domain.ViewInvalidator
}

// NewAssignmentUsecase creates a new assignment usecase
func NewAssignmentUsecase(assignmentRepo domain.AssignmentRepository, invalidator domain.ViewInvalidator) domain.AssignmentUsecase {
	return &assignmentUsecase{
		assignmentRepo: assignmentRepo,
		invalidator:    invalidator,
	}
}

// CreateAssignment persists a new immutable assignment owned by the calling
// alumnus
func (u *assignmentUsecase) CreateAssignment(ctx context.Context, a *domain.JobAssignment) (*domain.JobAssignment, error) {
	userID := callerID(ctx)
	if userID == "" || callerRole(ctx) != domain.RoleAlumni {
		return nil, apperror.Forbidden("Alumni access required")
	}

	if strings.TrimSpace(a.Title) == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	if strings.TrimSpace(a.Description) == "" {
		return nil, apperror.BadRequest("Description is required")
	}
	if a.Deadline.IsZero() {
		return nil, apperror.BadRequest("Deadline is required")
	}
	if a.Deadline.Before(time.Now()) {
		return nil, apperror.BadRequest("Deadline must be in the future")
	}

	a.CreatedByID = userID

	if err := u.assignmentRepo.Create(ctx, a); err != nil {
		return nil, apperror.Internal(err)
	}

	u.invalidator.Invalidate(ctx, domain.ViewJobs, domain.ViewRefer)
	return a, nil
}

// ListAssignments returns every assignment annotated with a caller-relative
// ownership flag. Anonymous callers get all flags false. Degrades to an
// empty board on failure so the page still renders.
func (u *assignmentUsecase) ListAssignments(ctx context.Context) ([]domain.AssignmentWithMeta, error) {
	assignments, err := u.assignmentRepo.FetchAll(ctx)
	if err != nil {
		logger.Log.Error("failed to fetch assignments", "error", err)
		return []domain.AssignmentWithMeta{}, nil
	}

	userID := callerID(ctx)
	for i := range assignments {
		assignments[i].IsOwner = userID != "" && assignments[i].CreatedByID == userID
	}
	return assignments, nil
}

// ListMyAssignments returns the calling alumnus's assignments with nested
// submissions and their authors
func (u *assignmentUsecase) ListMyAssignments(ctx context.Context) ([]domain.OwnedAssignment, error) {
	userID := callerID(ctx)
	if userID == "" || callerRole(ctx) != domain.RoleAlumni {
		return nil, apperror.Forbidden("Alumni access required")
	}

	assignments, err := u.assignmentRepo.FetchByCreator(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to fetch owned assignments", "user_id", userID, "error", err)
		return []domain.OwnedAssignment{}, nil
	}
	return assignments, nil
}
