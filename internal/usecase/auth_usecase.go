package usecase

import (
	"context"

	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

// GetCurrentUser resolves a user by id. The auth middleware calls this on
// every request so role and institution always come from the database, not
// from token claims.
func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.Unauthorized("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
