package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateSubmission = errors.New("submission already exists for this assignment")
	ErrInvalidTransition   = errors.New("submission status transition not allowed")
)

// User roles
const (
	RoleStudent = "STUDENT"
	RoleAlumni  = "ALUMNI"
)

// Mentorship status values (profile field, no enforced mentor relation)
const (
	MentorshipNone          = "NONE"
	MentorshipSeekingMentor = "SEEKING_MENTOR"
	MentorshipOpenToMentor  = "OPEN_TO_MENTOR"
	MentorshipMentoring     = "MENTORING"
)

type User struct {
	ID                  string    `json:"id" validate:"required"`
	Email               string    `json:"email" validate:"omitempty,email"`
	Username            string    `json:"username" validate:"omitempty,valid_username"`
	Name                string    `json:"name" validate:"required,min=2,max=100,valid_name"`
	Role                string    `json:"role" validate:"omitempty,oneof=STUDENT ALUMNI"`
	Bio                 *string   `json:"bio,omitempty" validate:"omitempty,max=500,no_emoji"`
	Image               *string   `json:"image,omitempty"`
	Location            *string   `json:"location,omitempty" validate:"omitempty,max=100"`
	Website             *string   `json:"website,omitempty" validate:"omitempty,url"`
	Institution         string    `json:"institution"`
	Degree              *string   `json:"degree,omitempty" validate:"omitempty,max=100"`
	Department          *string   `json:"department,omitempty" validate:"omitempty,max=100"`
	YearOfStudy         *int      `json:"year_of_study,omitempty" validate:"omitempty,min=1,max=8"`
	GraduationYear      *int      `json:"graduation_year,omitempty" validate:"omitempty,min=1950"`
	CurrentPosition     *string   `json:"current_position,omitempty" validate:"omitempty,max=150"`
	CurrentOrganization *string   `json:"current_organization,omitempty" validate:"omitempty,max=150"`
	Skills              []string  `json:"skills" validate:"max=50"`
	Interests           []string  `json:"interests" validate:"max=50"`
	LinkedinURL         *string   `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	GithubURL           *string   `json:"github_url,omitempty" validate:"omitempty,url"`
	PortfolioURL        *string   `json:"portfolio_url,omitempty" validate:"omitempty,url"`
	ResumeURL           *string   `json:"resume_url,omitempty" validate:"omitempty,url"`
	MentorshipStatus    string    `json:"mentorship_status" validate:"omitempty,oneof=NONE SEEKING_MENTOR OPEN_TO_MENTOR MENTORING"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// UserPreview is the compact identity shape embedded in list responses
// (message senders, assignment creators, notification actors).
type UserPreview struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Image    *string `json:"image,omitempty"`
}

// Profile is a public profile view with relationship counts.
type Profile struct {
	User
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
	IsFollowing    bool  `json:"is_following"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	FetchAllExcept(ctx context.Context, excludeID string) ([]UserPreview, error)
	FetchByRoleAndInstitution(ctx context.Context, role, institution string) ([]User, error)
	CountRelations(ctx context.Context, userID string) (followers, following int64, err error)
}

type AuthUsecase interface {
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}

type ProfileUsecase interface {
	GetProfileByUsername(ctx context.Context, username string) (*Profile, error)
	UpdateProfile(ctx context.Context, user *User) error
	ListUsers(ctx context.Context) ([]UserPreview, error)
}

// AlumniUsecase exposes alumni-only directory views over students.
type AlumniUsecase interface {
	GetMyStudents(ctx context.Context) ([]User, error)
	GetStudentDetails(ctx context.Context, studentID string) (*User, error)
}
