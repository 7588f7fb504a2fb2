package service

import (
	"context"
	"errors"

	"traveltales/internal/models"
	"traveltales/internal/repository"
	"traveltales/internal/validation"

	"gorm.io/gorm"
)

type UserService struct {
	userRepo   repository.UserRepository
	socialRepo repository.SocialRepository
}

type UpdateProfileInput struct {
	UserID    uint
	Username  string
	FirstName string
	LastName  string
	AvatarURL string
}

func NewUserService(userRepo repository.UserRepository, socialRepo repository.SocialRepository) *UserService {
	return &UserService{userRepo: userRepo, socialRepo: socialRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// GetProfile resolves a username to the public profile: identity plus the
// follow counts and the viewer's relationship to the account.
func (s *UserService) GetProfile(ctx context.Context, username string, viewerID uint) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	state, err := s.socialRepo.State(ctx, viewerID, user.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	user.FollowerCount = state.FollowerCount
	user.IsFollowing = state.IsFollowing
	user.IsFollowedBy = state.IsFollowedBy

	// State carries the viewer's following count; the profile shows the
	// target's own.
	targetFollowing, err := s.socialRepo.FollowingCount(ctx, user.ID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	user.FollowingCount = int(targetFollowing)

	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUserByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = in.Username
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, models.NewConflictError("Username is already taken")
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", userID)
		}
		return models.NewInternalError(err)
	}
	return nil
}
