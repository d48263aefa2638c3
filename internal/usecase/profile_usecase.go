package usecase

import (
	"context"
	"errors"

	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"
	"pathbridge-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	userRepo   domain.UserRepository
	followRepo domain.FollowRepository
	validate   *validator.Validate
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(userRepo domain.UserRepository, followRepo domain.FollowRepository, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{
		userRepo:   userRepo,
		followRepo: followRepo,
		validate:   validate,
	}
}

// GetProfileByUsername returns a public profile with relationship counts.
// Works for anonymous callers; the is_following flag is caller-relative.
func (u *profileUsecase) GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, apperror.Internal(err)
	}

	followers, following, err := u.userRepo.CountRelations(ctx, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	profile := &domain.Profile{
		User:           *user,
		FollowerCount:  followers,
		FollowingCount: following,
	}

	if callerID := callerID(ctx); callerID != "" && callerID != user.ID {
		isFollowing, err := u.followRepo.Exists(ctx, callerID, user.ID)
		if err == nil {
			profile.IsFollowing = isFollowing
		}
	}
	return profile, nil
}

// UpdateProfile writes the caller's own profile. The user id is always
// forced from the context so one user cannot edit another's profile.
func (u *profileUsecase) UpdateProfile(ctx context.Context, user *domain.User) error {
	ctxUserID := callerID(ctx)
	if ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	user.ID = ctxUserID
	if user.MentorshipStatus == "" {
		user.MentorshipStatus = domain.MentorshipNone
	}

	if err := u.validate.Struct(user); err != nil {
		return apperror.BadRequest(err.Error())
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Profile not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// ListUsers returns previews of every user except the caller (the message
// recipient picker). Degrades to an empty list on failure.
func (u *profileUsecase) ListUsers(ctx context.Context) ([]domain.UserPreview, error) {
	userID := callerID(ctx)
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	users, err := u.userRepo.FetchAllExcept(ctx, userID)
	if err != nil {
		logger.Log.Error("failed to fetch user previews", "user_id", userID, "error", err)
		return []domain.UserPreview{}, nil
	}
	return users, nil
}
