package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"
)

type mentorshipUsecase struct {
	userRepo    domain.UserRepository
	meetingRepo domain.MeetingRepository
}

// NewMentorshipUsecase creates a new mentorship usecase
func NewMentorshipUsecase(userRepo domain.UserRepository, meetingRepo domain.MeetingRepository) domain.MentorshipUsecase {
	return &mentorshipUsecase{
		userRepo:    userRepo,
		meetingRepo: meetingRepo,
	}
}

// GetAvailableMentors returns the alumni of the calling student's
// institution
func (u *mentorshipUsecase) GetAvailableMentors(ctx context.Context) ([]domain.User, error) {
	if callerID(ctx) == "" || callerRole(ctx) != domain.RoleStudent {
		return nil, apperror.Forbidden("Student access required")
	}

	mentors, err := u.userRepo.FetchByRoleAndInstitution(ctx, domain.RoleAlumni, callerInstitution(ctx))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return mentors, nil
}

// GetMyMentor returns the first actively mentoring alumnus of the caller's
// institution, or nil when there is none. There is no enforced mentor
// assignment relation; this mirrors the mentorship_status profile field.
func (u *mentorshipUsecase) GetMyMentor(ctx context.Context) (*domain.User, error) {
	if callerID(ctx) == "" || callerRole(ctx) != domain.RoleStudent {
		return nil, apperror.Forbidden("Student access required")
	}

	alumni, err := u.userRepo.FetchByRoleAndInstitution(ctx, domain.RoleAlumni, callerInstitution(ctx))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for i := range alumni {
		if alumni[i].MentorshipStatus == domain.MentorshipMentoring {
			return &alumni[i], nil
		}
	}
	return nil, nil
}

// ScheduleMeeting requests a meeting with a mentor. Created in REQUESTED
// state; confirmation happens out of band.
func (u *mentorshipUsecase) ScheduleMeeting(ctx context.Context, mentorID, title string, date time.Time, timeSlot string) (*domain.Meeting, error) {
	userID := callerID(ctx)
	if userID == "" || callerRole(ctx) != domain.RoleStudent {
		return nil, apperror.Forbidden("Student access required")
	}

	if strings.TrimSpace(title) == "" {
		return nil, apperror.BadRequest("Title is required")
	}
	if date.IsZero() {
		return nil, apperror.BadRequest("Date is required")
	}

	mentor, err := u.userRepo.GetByID(ctx, mentorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Mentor not found")
		}
		return nil, apperror.Internal(err)
	}
	if mentor.Role != domain.RoleAlumni {
		return nil, apperror.BadRequest("Meetings can only be scheduled with alumni")
	}

	meeting := &domain.Meeting{
		Title:     title,
		Date:      date,
		Time:      timeSlot,
		StudentID: userID,
		MentorID:  mentorID,
		Status:    domain.MeetingStatusRequested,
	}
	if err := u.meetingRepo.Create(ctx, meeting); err != nil {
		return nil, apperror.Internal(err)
	}
	return meeting, nil
}

// GetMyMeetings returns the calling student's meetings, soonest first
func (u *mentorshipUsecase) GetMyMeetings(ctx context.Context) ([]domain.MeetingWithMentor, error) {
	userID := callerID(ctx)
	if userID == "" || callerRole(ctx) != domain.RoleStudent {
		return nil, apperror.Forbidden("Student access required")
	}

	meetings, err := u.meetingRepo.FetchByStudent(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return meetings, nil
}
