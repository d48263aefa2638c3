package usecase

import (
	"context"
	"errors"

	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"
)

type alumniUsecase struct {
	userRepo domain.UserRepository
}

// NewAlumniUsecase creates a new alumni usecase
func NewAlumniUsecase(userRepo domain.UserRepository) domain.AlumniUsecase {
	return &alumniUsecase{userRepo: userRepo}
}

// GetMyStudents returns the students of the calling alumnus's institution,
// newest first
func (u *alumniUsecase) GetMyStudents(ctx context.Context) ([]domain.User, error) {
	if callerID(ctx) == "" || callerRole(ctx) != domain.RoleAlumni {
		return nil, apperror.Forbidden("Alumni access required")
	}

	students, err := u.userRepo.FetchByRoleAndInstitution(ctx, domain.RoleStudent, callerInstitution(ctx))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return students, nil
}

// GetStudentDetails returns a single student's full profile for an alumnus
func (u *alumniUsecase) GetStudentDetails(ctx context.Context, studentID string) (*domain.User, error) {
	if callerID(ctx) == "" || callerRole(ctx) != domain.RoleAlumni {
		return nil, apperror.Forbidden("Alumni access required")
	}

	student, err := u.userRepo.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Student not found")
		}
		return nil, apperror.Internal(err)
	}
	if student.Role != domain.RoleStudent {
		return nil, apperror.NotFound("Student not found")
	}
	return student, nil
}
