package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"
	"pathbridge-backend/pkg/logger"
	"pathbridge-backend/pkg/metrics"
)

// referralMessageTemplate interpolates company, assignment title, and review
// notes, in that order.
const referralMessageTemplate = "🎉 Congratulations! You have been referred to %s based on your excellent performance in the %q assignment.\n\nReferral Notes: %s\n\nBest of luck with your application!"

type submissionUsecase struct {
	submissionRepo   domain.SubmissionRepository
	assignmentRepo   domain.AssignmentRepository
	messageRepo      domain.MessageRepository
	notificationRepo domain.NotificationRepository
	invalidator      domain.ViewInvalidator

	allowLateSubmissions bool
}

// NewSubmissionUsecase creates a new submission usecase
func NewSubmissionUsecase(
	submissionRepo domain.SubmissionRepository,
	assignmentRepo domain.AssignmentRepository,
	messageRepo domain.MessageRepository,
	notificationRepo domain.NotificationRepository,
	invalidator domain.ViewInvalidator,
	allowLateSubmissions bool,
) domain.SubmissionUsecase {
	return &submissionUsecase{
		submissionRepo:       submissionRepo,
		assignmentRepo:       assignmentRepo,
		messageRepo:          messageRepo,
		notificationRepo:     notificationRepo,
		invalidator:          invalidator,
		allowLateSubmissions: allowLateSubmissions,
	}
}

// SubmitAssignment creates a SUBMITTED record for the calling student. The
// (assignment, student) pair is unique; a concurrent duplicate loses at the
// database constraint and surfaces as a conflict here.
func (u *submissionUsecase) SubmitAssignment(ctx context.Context, assignmentID, submissionText string) (*domain.JobSubmission, error) {
	userID := callerID(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	if strings.TrimSpace(submissionText) == "" {
		return nil, apperror.BadRequest("Submission text is required")
	}

	assignment, err := u.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Assignment not found")
		}
		return nil, apperror.Internal(err)
	}

	if !u.allowLateSubmissions && time.Now().After(assignment.Deadline) {
		return nil, apperror.BadRequest("Assignment deadline has passed")
	}

	submission := &domain.JobSubmission{
		AssignmentID:   assignmentID,
		StudentID:      userID,
		SubmissionText: submissionText,
		Status:         domain.SubmissionStatusSubmitted,
	}

	if err := u.submissionRepo.Create(ctx, submission); err != nil {
		if errors.Is(err, domain.ErrDuplicateSubmission) {
			return nil, apperror.Conflict("You have already submitted this assignment", err)
		}
		return nil, apperror.Internal(err)
	}

	metrics.SubmissionsCreated.Inc()
	u.invalidator.Invalidate(ctx, domain.ViewJobs)
	return submission, nil
}

// ListSubmissions returns all submissions for an assignment. Only the owning
// alumnus may call this; the rows expose student emails.
func (u *submissionUsecase) ListSubmissions(ctx context.Context, assignmentID string) ([]domain.SubmissionWithStudent, error) {
	userID := callerID(ctx)
	if userID == "" || callerRole(ctx) != domain.RoleAlumni {
		return nil, apperror.Forbidden("Alumni access required")
	}

	assignment, err := u.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Assignment not found")
		}
		return nil, apperror.Internal(err)
	}
	if assignment.CreatedByID != userID {
		return nil, apperror.Forbidden("You can only view submissions for your own assignments")
	}

	submissions, err := u.submissionRepo.FetchByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return submissions, nil
}

// GetMySubmissions returns the calling student's submissions. Degrades to
// an empty list on failure so the page still renders.
func (u *submissionUsecase) GetMySubmissions(ctx context.Context) ([]domain.StudentSubmission, error) {
	userID := callerID(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	submissions, err := u.submissionRepo.FetchByStudent(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to fetch student submissions", "user_id", userID, "error", err)
		return []domain.StudentSubmission{}, nil
	}
	return submissions, nil
}

// UpdateSubmissionStatus applies a review decision from the owning alumnus.
// Transitions follow the SUBMITTED -> {REVIEWED, REFERRED, REJECTED} table;
// the three outcomes are terminal, so a decision cannot be overwritten and
// the referral side effect cannot fire twice.
//
// A REFERRED decision carrying both a referral company and review notes
// produces exactly one congratulatory Message and one MESSAGE-type
// Notification for the student. REFERRED without either field writes only
// the status.
func (u *submissionUsecase) UpdateSubmissionStatus(ctx context.Context, submissionID string, decision domain.ReviewDecision) (*domain.JobSubmission, error) {
	userID := callerID(ctx)
	if userID == "" || callerRole(ctx) != domain.RoleAlumni {
		return nil, apperror.Forbidden("Alumni access required")
	}

	if !domain.IsReviewStatus(decision.Status) {
		return nil, apperror.BadRequest("Invalid status. Must be: REVIEWED, REFERRED, or REJECTED")
	}

	submission, err := u.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Submission not found")
		}
		return nil, apperror.Internal(err)
	}

	assignment, err := u.assignmentRepo.GetByID(ctx, submission.AssignmentID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if assignment.CreatedByID != userID {
		return nil, apperror.Forbidden("You can only review submissions for your own assignments")
	}

	if !domain.CanTransition(submission.Status, decision.Status) {
		return nil, apperror.Conflict(
			fmt.Sprintf("Submission is already %s and cannot be reviewed again", submission.Status),
			domain.ErrInvalidTransition,
		)
	}

	// Compare-and-set in the repository closes the race between two
	// reviewers who both passed the check above.
	if err := u.submissionRepo.UpdateStatus(ctx, submissionID, decision); err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			return nil, apperror.Conflict("Submission was already reviewed", err)
		}
		return nil, apperror.Internal(err)
	}

	submission.Status = decision.Status
	submission.ReviewNotes = decision.ReviewNotes
	submission.ReferralCompany = decision.ReferralCompany

	if decision.Status == domain.SubmissionStatusReferred &&
		decision.ReferralCompany != nil && *decision.ReferralCompany != "" &&
		decision.ReviewNotes != nil && *decision.ReviewNotes != "" {
		u.sendReferralNotice(ctx, userID, submission, assignment.Title)
		metrics.ReferralsIssued.Inc()
	}

	u.invalidator.Invalidate(ctx, domain.ViewRefer, domain.ViewMessages, domain.ViewNotifications)
	return submission, nil
}

// sendReferralNotice writes the congratulatory message and its paired
// notification. Failures are logged and swallowed: the status transition has
// already committed and is not rolled back for a notice delivery problem.
func (u *submissionUsecase) sendReferralNotice(ctx context.Context, alumnusID string, s *domain.JobSubmission, assignmentTitle string) {
	content := fmt.Sprintf(referralMessageTemplate, *s.ReferralCompany, assignmentTitle, *s.ReviewNotes)

	message := &domain.Message{
		SenderID:   alumnusID,
		ReceiverID: s.StudentID,
		Content:    content,
	}
	if err := u.messageRepo.Create(ctx, message); err != nil {
		logger.Log.Error("failed to create referral message", "submission_id", s.ID, "error", err)
		return
	}

	notification := &domain.Notification{
		UserID:    s.StudentID,
		CreatorID: alumnusID,
		Type:      domain.NotificationMessage,
	}
	if err := u.notificationRepo.Create(ctx, notification); err != nil {
		logger.Log.Error("failed to create referral notification", "submission_id", s.ID, "error", err)
	}
}
