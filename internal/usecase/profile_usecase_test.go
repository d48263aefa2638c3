package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pathbridge-backend/internal/domain"
	"pathbridge-backend/internal/usecase"
	"pathbridge-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newValidate() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func TestProfileUpdateIDOR(t *testing.T) {
	t.Run("Should fail safely when Context UserID is nil", func(t *testing.T) {
		uc := usecase.NewProfileUsecase(new(MockUserRepo), new(MockFollowRepo), newValidate())

		err := uc.UpdateProfile(context.Background(), &domain.User{Name: "Alice Doe"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Should force UserID from context", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(userRepo, new(MockFollowRepo), newValidate())

		userRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			assert.Equal(t, "user1", u.ID)
		})

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		err := uc.UpdateProfile(ctx, &domain.User{ID: "hacker_try", Name: "Alice Doe"})
		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should reject an invalid profile", func(t *testing.T) {
		uc := usecase.NewProfileUsecase(new(MockUserRepo), new(MockFollowRepo), newValidate())

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		err := uc.UpdateProfile(ctx, &domain.User{Name: "X"}) // too short
		assert.Error(t, err)
	})
}

func TestGetProfileByUsername(t *testing.T) {
	alice := &domain.User{ID: "user1", Username: "alice", Name: "Alice Doe"}

	t.Run("Should resolve counts and the caller-relative follow flag", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		followRepo := new(MockFollowRepo)
		uc := usecase.NewProfileUsecase(userRepo, followRepo, newValidate())

		userRepo.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
		userRepo.On("CountRelations", mock.Anything, "user1").Return(int64(5), int64(3), nil)
		followRepo.On("Exists", mock.Anything, "user2", "user1").Return(true, nil)

		ctx := authedCtx("user2", domain.RoleStudent, "MIT")
		profile, err := uc.GetProfileByUsername(ctx, "alice")
		assert.NoError(t, err)
		assert.EqualValues(t, 5, profile.FollowerCount)
		assert.EqualValues(t, 3, profile.FollowingCount)
		assert.True(t, profile.IsFollowing)
	})

	t.Run("Should work for anonymous callers with the flag false", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		followRepo := new(MockFollowRepo)
		uc := usecase.NewProfileUsecase(userRepo, followRepo, newValidate())

		userRepo.On("GetByUsername", mock.Anything, "alice").Return(alice, nil)
		userRepo.On("CountRelations", mock.Anything, "user1").Return(int64(5), int64(3), nil)

		profile, err := uc.GetProfileByUsername(context.Background(), "alice")
		assert.NoError(t, err)
		assert.False(t, profile.IsFollowing)
		followRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAlumniDirectory(t *testing.T) {
	t.Run("Should reject students", func(t *testing.T) {
		uc := usecase.NewAlumniUsecase(new(MockUserRepo))

		ctx := authedCtx("stud1", domain.RoleStudent, "MIT")
		_, err := uc.GetMyStudents(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Alumni access required")
	})

	t.Run("Should scope students to the caller's institution", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAlumniUsecase(userRepo)

		userRepo.On("FetchByRoleAndInstitution", mock.Anything, domain.RoleStudent, "MIT").Return([]domain.User{
			{ID: "stud1", Role: domain.RoleStudent},
		}, nil)

		ctx := authedCtx("alum1", domain.RoleAlumni, "MIT")
		students, err := uc.GetMyStudents(ctx)
		assert.NoError(t, err)
		assert.Len(t, students, 1)
		userRepo.AssertExpectations(t)
	})

	t.Run("Should hide non-students behind a not found", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAlumniUsecase(userRepo)

		userRepo.On("GetByID", mock.Anything, "alum2").Return(&domain.User{ID: "alum2", Role: domain.RoleAlumni}, nil)

		ctx := authedCtx("alum1", domain.RoleAlumni, "MIT")
		_, err := uc.GetStudentDetails(ctx, "alum2")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Student not found")
	})
}

func TestMentorship(t *testing.T) {
	t.Run("Should reject alumni from the mentor listing", func(t *testing.T) {
		uc := usecase.NewMentorshipUsecase(new(MockUserRepo), new(MockMeetingRepo))

		ctx := authedCtx("alum1", domain.RoleAlumni, "MIT")
		_, err := uc.GetAvailableMentors(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Student access required")
	})

	t.Run("Should return nil when nobody is mentoring", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewMentorshipUsecase(userRepo, new(MockMeetingRepo))

		userRepo.On("FetchByRoleAndInstitution", mock.Anything, domain.RoleAlumni, "MIT").Return([]domain.User{
			{ID: "alum1", MentorshipStatus: domain.MentorshipOpenToMentor},
		}, nil)

		ctx := authedCtx("stud1", domain.RoleStudent, "MIT")
		mentor, err := uc.GetMyMentor(ctx)
		assert.NoError(t, err)
		assert.Nil(t, mentor)
	})

	t.Run("Should refuse meetings with non-alumni", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewMentorshipUsecase(userRepo, new(MockMeetingRepo))

		userRepo.On("GetByID", mock.Anything, "stud2").Return(&domain.User{ID: "stud2", Role: domain.RoleStudent}, nil)

		ctx := authedCtx("stud1", domain.RoleStudent, "MIT")
		_, err := uc.ScheduleMeeting(ctx, "stud2", "Career chat", time.Now().Add(48 * time.Hour), "10:00")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only be scheduled with alumni")
	})

	t.Run("Should create the meeting in REQUESTED state", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		meetingRepo := new(MockMeetingRepo)
		uc := usecase.NewMentorshipUsecase(userRepo, meetingRepo)

		userRepo.On("GetByID", mock.Anything, "alum1").Return(&domain.User{ID: "alum1", Role: domain.RoleAlumni}, nil)
		meetingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Meeting")).Return(nil)

		ctx := authedCtx("stud1", domain.RoleStudent, "MIT")
		meeting, err := uc.ScheduleMeeting(ctx, "alum1", "Career chat", time.Now().Add(48 * time.Hour), "10:00")
		assert.NoError(t, err)
		assert.Equal(t, domain.MeetingStatusRequested, meeting.Status)
		assert.Equal(t, "stud1", meeting.StudentID)
	})
}

func TestListUsersDegrade(t *testing.T) {
	t.Run("Should return an empty picker when the query fails", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewProfileUsecase(userRepo, new(MockFollowRepo), newValidate())

		userRepo.On("FetchAllExcept", mock.Anything, "user1").Return(nil, errors.New("db down"))

		ctx := authedCtx("user1", domain.RoleStudent, "MIT")
		users, err := uc.ListUsers(ctx)
		assert.NoError(t, err)
		assert.Empty(t, users)
		assert.NotNil(t, users)
	})
}
