package domain

import (
	"context"
	"time"
)

// Meeting status lifecycle (student requests, mentor confirms out of band)
const (
	MeetingStatusRequested = "REQUESTED"
	MeetingStatusConfirmed = "CONFIRMED"
	MeetingStatusCancelled = "CANCELLED"
)

type Meeting struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	StudentID string    `json:"student_id"`
	MentorID  string    `json:"mentor_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type MeetingWithMentor struct {
	Meeting
	Mentor UserPreview `json:"mentor"`
}

type MeetingRepository interface {
	Create(ctx context.Context, m *Meeting) error
	FetchByStudent(ctx context.Context, studentID string) ([]MeetingWithMentor, error)
}

type MentorshipUsecase interface {
	GetAvailableMentors(ctx context.Context) ([]User, error)
	GetMyMentor(ctx context.Context) (*User, error)
	ScheduleMeeting(ctx context.Context, mentorID, title string, date time.Time, timeSlot string) (*Meeting, error)
	GetMyMeetings(ctx context.Context) ([]MeetingWithMentor, error)
}
