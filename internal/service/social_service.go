package service

import (
	"context"
	"errors"

	"traveltales/internal/models"
	"traveltales/internal/observability"
	"traveltales/internal/repository"

	"gorm.io/gorm"
)

// SocialService guards the follow graph's service-level invariants. The
// self-follow rejection lives here so no repository call is attempted and
// no row is ever written for the degenerate pair.
type SocialService struct {
	socialRepo repository.SocialRepository
}

func NewSocialService(socialRepo repository.SocialRepository) *SocialService {
	return &SocialService{socialRepo: socialRepo}
}

func (s *SocialService) FollowUser(ctx context.Context, followerID, targetID uint) (*models.SocialState, error) {
	if followerID == targetID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}
	state, err := s.socialRepo.Follow(ctx, followerID, targetID)
	if err != nil {
		observability.RecordFollowEvent("follow", "error")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", targetID)
		}
		return nil, models.NewInternalError(err)
	}
	observability.RecordFollowEvent("follow", "ok")
	return state, nil
}

func (s *SocialService) UnfollowUser(ctx context.Context, followerID, targetID uint) (*models.SocialState, error) {
	if followerID == targetID {
		return nil, models.NewValidationError("You cannot unfollow yourself")
	}
	state, err := s.socialRepo.Unfollow(ctx, followerID, targetID)
	if err != nil {
		observability.RecordFollowEvent("unfollow", "error")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No active edge to remove reads the same as an unknown user.
			return nil, models.NewNotFoundError("Follow", targetID)
		}
		return nil, models.NewInternalError(err)
	}
	observability.RecordFollowEvent("unfollow", "ok")
	return state, nil
}

func (s *SocialService) GetSocialState(ctx context.Context, viewerID, targetID uint) (*models.SocialState, error) {
	state, err := s.socialRepo.State(ctx, viewerID, targetID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return state, nil
}

func (s *SocialService) ListFollowers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	users, err := s.socialRepo.Followers(ctx, userID, clampLimit(limit), offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (s *SocialService) ListFollowing(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	users, err := s.socialRepo.Following(ctx, userID, clampLimit(limit), offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
