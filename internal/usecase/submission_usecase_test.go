package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"pathbridge-backend/internal/domain"
	"pathbridge-backend/internal/usecase"
	"pathbridge-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func strPtr(s string) *string { return &s }

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestSubmitAssignment(t *testing.T) {
	assignment := &domain.JobAssignment{
		ID:          "assign1",
		Title:       "Build a REST API",
		CreatedByID: "alum1",
	}

	t.Run("Should fail when user is not authenticated", func(t *testing.T) {
		uc := usecase.NewSubmissionUsecase(new(MockSubmissionRepo), new(MockAssignmentRepo), new(MockMessageRepo), new(MockNotificationRepo), relaxedInvalidator(), true)

		_, err := uc.SubmitAssignment(context.Background(), "assign1", "my work")
		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, appErrCode(t, err))
	})

	t.Run("Should fail when submission text is blank", func(t *testing.T) {
		uc := usecase.NewSubmissionUsecase(new(MockSubmissionRepo), new(MockAssignmentRepo), new(MockMessageRepo), new(MockNotificationRepo), relaxedInvalidator(), true)

		ctx := authedCtx("stud1", domain.RoleStudent, "MIT")
		_, err := uc.SubmitAssignment(ctx, "assign1", "   ")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Submission text is required")
	})

	t.Run("Should create a SUBMITTED record for the caller", func(t *testing.T) {
		submissionRepo := new(MockSubmissionRepo)
		assignmentRepo := new(MockAssignmentRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, assignmentRepo, new(MockMessageRepo), new(MockNotificationRepo), relaxedInvalidator(), true)

		assignmentRepo.On("GetByID", mock.Anything, "assign1").Return(assignment, nil)
		submissionRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.JobSubmission")).Return(nil).Run(func(args mock.Arguments) {
			s := args.Get(1).(*domain.JobSubmission)
			assert.Equal(t, "stud1", s.StudentID)
			assert.Equal(t, domain.SubmissionStatusSubmitted, s.Status)
		})

		ctx := authedCtx("stud1", domain.RoleStudent, "MIT")
		submission, err := uc.SubmitAssignment(ctx, "assign1", "my work")
		assert.NoError(t, err)
		assert.Equal(t, domain.SubmissionStatusSubmitted, submission.Status)
		submissionRepo.AssertExpectations(t)
	})

	t.Run("Should surface a duplicate submission as a conflict", func(t *testing.T) {
		submissionRepo := new(MockSubmissionRepo)
		assignmentRepo := new(MockAssignmentRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, assignmentRepo, new(MockMessageRepo), new(MockNotificationRepo), relaxedInvalidator(), true)

		assignmentRepo.On("GetByID", mock.Anything, "assign1").Return(assignment, nil)
		submissionRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateSubmission)

		ctx := authedCtx("stud1", domain.RoleStudent, "MIT")
		_, err := uc.SubmitAssignment(ctx, "assign1", "my work")
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appErrCode(t, err))
		assert.Contains(t, err.Error(), "already submitted")
	})

	t.Run("Should fail for a missing assignment", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		uc := usecase.NewSubmissionUsecase(new(MockSubmissionRepo), assignmentRepo, new(MockMessageRepo), new(MockNotificationRepo), relaxedInvalidator(), true)

		assignmentRepo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		ctx := authedCtx("stud1", domain.RoleStudent, "MIT")
		_, err := uc.SubmitAssignment(ctx, "ghost", "my work")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, appErrCode(t, err))
	})
}

func TestReviewTransitions(t *testing.T) {
	assignment := &domain.JobAssignment{
		ID:          "assign1",
		Title:       "Build a REST API",
		CreatedByID: "alum1",
	}

	newUC := func(submissionRepo *MockSubmissionRepo, assignmentRepo *MockAssignmentRepo, messageRepo *MockMessageRepo, notificationRepo *MockNotificationRepo) domain.SubmissionUsecase {
		return usecase.NewSubmissionUsecase(submissionRepo, assignmentRepo, messageRepo, notificationRepo, relaxedInvalidator(), true)
	}

	t.Run("Should reject non-alumni reviewers", func(t *testing.T) {
		uc := newUC(new(MockSubmissionRepo), new(MockAssignmentRepo), new(MockMessageRepo), new(MockNotificationRepo))

		ctx := authedCtx("stud1", domain.RoleStudent, "MIT")
		_, err := uc.UpdateSubmissionStatus(ctx, "sub1", domain.ReviewDecision{Status: domain.SubmissionStatusReviewed})
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
	})

	t.Run("Should reject an unknown review status", func(t *testing.T) {
		uc := newUC(new(MockSubmissionRepo), new(MockAssignmentRepo), new(MockMessageRepo), new(MockNotificationRepo))

		ctx := authedCtx("alum1", domain.RoleAlumni, "MIT")
		_, err := uc.UpdateSubmissionStatus(ctx, "sub1", domain.ReviewDecision{Status: "SUBMITTED"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid status")
	})

	t.Run("Should reject a reviewer who does not own the assignment", func(t *testing.T) {
		submissionRepo := new(MockSubmissionRepo)
		assignmentRepo := new(MockAssignmentRepo)
		uc := newUC(submissionRepo, assignmentRepo, new(MockMessageRepo), new(MockNotificationRepo))

		submissionRepo.On("GetByID", mock.Anything, "sub1").Return(&domain.JobSubmission{
			ID: "sub1", AssignmentID: "assign1", StudentID: "stud1", Status: domain.SubmissionStatusSubmitted,
		}, nil)
		assignmentRepo.On("GetByID", mock.Anything, "assign1").Return(assignment, nil)

		ctx := authedCtx("other_alum", domain.RoleAlumni, "MIT")
		_, err := uc.UpdateSubmissionStatus(ctx, "sub1", domain.ReviewDecision{Status: domain.SubmissionStatusReviewed})
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
	})

	t.Run("Should refuse to re-review a terminal submission", func(t *testing.T) {
		submissionRepo := new(MockSubmissionRepo)
		assignmentRepo := new(MockAssignmentRepo)
		messageRepo := new(MockMessageRepo)
		notificationRepo := new(MockNotificationRepo)
		uc := newUC(submissionRepo, assignmentRepo, messageRepo, notificationRepo)

		submissionRepo.On("GetByID", mock.Anything, "sub1").Return(&domain.JobSubmission{
			ID: "sub1", AssignmentID: "assign1", StudentID: "stud1", Status: domain.SubmissionStatusReferred,
		}, nil)
		assignmentRepo.On("GetByID", mock.Anything, "assign1").Return(assignment, nil)

		ctx := authedCtx("alum1", domain.RoleAlumni, "MIT")
		_, err := uc.UpdateSubmissionStatus(ctx, "sub1", domain.ReviewDecision{
			Status:          domain.SubmissionStatusReferred,
			ReviewNotes:     strPtr("great work"),
			ReferralCompany: strPtr("Acme"),
		})
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appErrCode(t, err))
		// The referral side effect must not fire a second time.
		messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should surface a lost compare-and-set race as a conflict", func(t *testing.T) {
		submissionRepo := new(MockSubmissionRepo)
		assignmentRepo := new(MockAssignmentRepo)
		uc := newUC(submissionRepo, assignmentRepo, new(MockMessageRepo), new(MockNotificationRepo))

		submissionRepo.On("GetByID", mock.Anything, "sub1").Return(&domain.JobSubmission{
			ID: "sub1", AssignmentID: "assign1", StudentID: "stud1", Status: domain.SubmissionStatusSubmitted,
		}, nil)
		assignmentRepo.On("GetByID", mock.Anything, "assign1").Return(assignment, nil)
		submissionRepo.On("UpdateStatus", mock.Anything, "sub1", mock.Anything).Return(domain.ErrInvalidTransition)

		ctx := authedCtx("alum1", domain.RoleAlumni, "MIT")
		_, err := uc.UpdateSubmissionStatus(ctx, "sub1", domain.ReviewDecision{Status: domain.SubmissionStatusRejected})
		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, appErrCode(t, err))
	})
}

func TestReferralSideEffects(t *testing.T) {
	assignment := &domain.JobAssignment{
		ID:          "assign1",
		Title:       "Build a REST API",
		CreatedByID: "alum1",
	}
	// Fresh pointer per subtest: the usecase mutates the returned row.
	pending := func() *domain.JobSubmission {
		return &domain.JobSubmission{
			ID: "sub1", AssignmentID: "assign1", StudentID: "stud1", Status: domain.SubmissionStatusSubmitted,
		}
	}

	t.Run("Should send exactly one message and one notification on a full referral", func(t *testing.T) {
		submissionRepo := new(MockSubmissionRepo)
		assignmentRepo := new(MockAssignmentRepo)
		messageRepo := new(MockMessageRepo)
		notificationRepo := new(MockNotificationRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, assignmentRepo, messageRepo, notificationRepo, relaxedInvalidator(), true)

		submissionRepo.On("GetByID", mock.Anything, "sub1").Return(pending(), nil)
		assignmentRepo.On("GetByID", mock.Anything, "assign1").Return(assignment, nil)
		submissionRepo.On("UpdateStatus", mock.Anything, "sub1", mock.Anything).Return(nil)

		messageRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Message")).Return(nil).Once().Run(func(args mock.Arguments) {
			msg := args.Get(1).(*domain.Message)
			assert.Equal(t, "alum1", msg.SenderID)
			assert.Equal(t, "stud1", msg.ReceiverID)
			assert.Contains(t, msg.Content, "referred to Acme")
			assert.Contains(t, msg.Content, `"Build a REST API"`)
			assert.Contains(t, msg.Content, "Referral Notes: great work")
		})
		notificationRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Notification")).Return(nil).Once().Run(func(args mock.Arguments) {
			n := args.Get(1).(*domain.Notification)
			assert.Equal(t, "stud1", n.UserID)
			assert.Equal(t, domain.NotificationMessage, n.Type)
		})

		ctx := authedCtx("alum1", domain.RoleAlumni, "MIT")
		updated, err := uc.UpdateSubmissionStatus(ctx, "sub1", domain.ReviewDecision{
			Status:          domain.SubmissionStatusReferred,
			ReviewNotes:     strPtr("great work"),
			ReferralCompany: strPtr("Acme"),
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.SubmissionStatusReferred, updated.Status)
		messageRepo.AssertExpectations(t)
		notificationRepo.AssertExpectations(t)
	})

	t.Run("Should update status only when referral fields are missing", func(t *testing.T) {
		submissionRepo := new(MockSubmissionRepo)
		assignmentRepo := new(MockAssignmentRepo)
		messageRepo := new(MockMessageRepo)
		notificationRepo := new(MockNotificationRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, assignmentRepo, messageRepo, notificationRepo, relaxedInvalidator(), true)

		submissionRepo.On("GetByID", mock.Anything, "sub1").Return(pending(), nil)
		assignmentRepo.On("GetByID", mock.Anything, "assign1").Return(assignment, nil)
		submissionRepo.On("UpdateStatus", mock.Anything, "sub1", mock.Anything).Return(nil)

		ctx := authedCtx("alum1", domain.RoleAlumni, "MIT")
		updated, err := uc.UpdateSubmissionStatus(ctx, "sub1", domain.ReviewDecision{
			Status:      domain.SubmissionStatusReferred,
			ReviewNotes: strPtr("great work"),
			// No referral company.
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.SubmissionStatusReferred, updated.Status)
		messageRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should keep the status when the notice fails to persist", func(t *testing.T) {
		submissionRepo := new(MockSubmissionRepo)
		assignmentRepo := new(MockAssignmentRepo)
		messageRepo := new(MockMessageRepo)
		notificationRepo := new(MockNotificationRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, assignmentRepo, messageRepo, notificationRepo, relaxedInvalidator(), true)

		submissionRepo.On("GetByID", mock.Anything, "sub1").Return(pending(), nil)
		assignmentRepo.On("GetByID", mock.Anything, "assign1").Return(assignment, nil)
		submissionRepo.On("UpdateStatus", mock.Anything, "sub1", mock.Anything).Return(nil)
		messageRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		ctx := authedCtx("alum1", domain.RoleAlumni, "MIT")
		updated, err := uc.UpdateSubmissionStatus(ctx, "sub1", domain.ReviewDecision{
			Status:          domain.SubmissionStatusReferred,
			ReviewNotes:     strPtr("great work"),
			ReferralCompany: strPtr("Acme"),
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.SubmissionStatusReferred, updated.Status)
		notificationRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestListSubmissionsOwnership(t *testing.T) {
	assignment := &domain.JobAssignment{ID: "assign1", CreatedByID: "alum1"}

	t.Run("Should reject an alumnus who does not own the assignment", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		uc := usecase.NewSubmissionUsecase(new(MockSubmissionRepo), assignmentRepo, new(MockMessageRepo), new(MockNotificationRepo), relaxedInvalidator(), true)

		assignmentRepo.On("GetByID", mock.Anything, "assign1").Return(assignment, nil)

		ctx := authedCtx("other_alum", domain.RoleAlumni, "MIT")
		_, err := uc.ListSubmissions(ctx, "assign1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "your own assignments")
	})

	t.Run("Should return the rows for the owner", func(t *testing.T) {
		submissionRepo := new(MockSubmissionRepo)
		assignmentRepo := new(MockAssignmentRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, assignmentRepo, new(MockMessageRepo), new(MockNotificationRepo), relaxedInvalidator(), true)

		assignmentRepo.On("GetByID", mock.Anything, "assign1").Return(assignment, nil)
		submissionRepo.On("FetchByAssignment", mock.Anything, "assign1").Return([]domain.SubmissionWithStudent{
			{JobSubmission: domain.JobSubmission{ID: "sub1"}, StudentEmail: "s@mit.edu"},
		}, nil)

		ctx := authedCtx("alum1", domain.RoleAlumni, "MIT")
		rows, err := uc.ListSubmissions(ctx, "assign1")
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, "s@mit.edu", rows[0].StudentEmail)
	})
}

func TestGetMySubmissionsDegrade(t *testing.T) {
	t.Run("Should return an empty list when the query fails", func(t *testing.T) {
		submissionRepo := new(MockSubmissionRepo)
		uc := usecase.NewSubmissionUsecase(submissionRepo, new(MockAssignmentRepo), new(MockMessageRepo), new(MockNotificationRepo), relaxedInvalidator(), true)

		submissionRepo.On("FetchByStudent", mock.Anything, "student1").Return(nil, errors.New("db down"))

		ctx := authedCtx("student1", domain.RoleStudent, "MIT")
		submissions, err := uc.GetMySubmissions(ctx)
		assert.NoError(t, err)
		assert.Empty(t, submissions)
		assert.NotNil(t, submissions)
	})
}
