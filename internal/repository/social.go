package repository

import (
	"context"

	"traveltales/internal/models"

	"gorm.io/gorm"
)

// SocialRepository owns the directed follow-edge relation. Edges share the
// toggle-via-upsert contract of likes: unique on (follower, following), at
// most one row per ordered pair, active flag carries the current state.
type SocialRepository interface {
	Follow(ctx context.Context, followerID, followingID uint) (*models.SocialState, error)
	Unfollow(ctx context.Context, followerID, followingID uint) (*models.SocialState, error)
	State(ctx context.Context, viewerID, targetID uint) (*models.SocialState, error)
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	FollowerCount(ctx context.Context, userID uint) (int64, error)
	FollowingCount(ctx context.Context, userID uint) (int64, error)
	Followers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error)
	Following(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error)
}

type socialRepository struct {
	db *gorm.DB
}

// NewSocialRepository creates a new social graph repository
func NewSocialRepository(db *gorm.DB) SocialRepository {
	return &socialRepository{db: db}
}

func requireActiveUser(tx *gorm.DB, userID uint) error {
	var count int64
	if err := tx.Model(&models.User{}).
		Where("id = ? AND active = ?", userID, true).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Follow upserts the edge active and returns the refreshed snapshot. The
// self-follow guard lives in the service layer; here the only precondition
// is that the target user exists.
func (r *socialRepository) Follow(ctx context.Context, followerID, followingID uint) (*models.SocialState, error) {
	var state *models.SocialState
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireActiveUser(tx, followingID); err != nil {
			return err
		}

		if err := tx.Exec(
			`INSERT INTO follows (follower_id, following_id, active, created_at, updated_at)
			 VALUES (?, ?, true, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			 ON CONFLICT (follower_id, following_id)
			 DO UPDATE SET active = true, updated_at = CURRENT_TIMESTAMP`,
			followerID, followingID,
		).Error; err != nil {
			return err
		}

		var err error
		state, err = snapshotState(tx, followerID, followingID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// Unfollow deactivates the edge. No active edge to remove is NotFound,
// uniformly for never-followed and already-unfollowed pairs.
func (r *socialRepository) Unfollow(ctx context.Context, followerID, followingID uint) (*models.SocialState, error) {
	var state *models.SocialState
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ? AND active = ?", followerID, followingID, true).
			Update("active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var err error
		state, err = snapshotState(tx, followerID, followingID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return state, nil
}

// State recomputes the viewer-relative snapshot without mutating anything.
func (r *socialRepository) State(ctx context.Context, viewerID, targetID uint) (*models.SocialState, error) {
	return snapshotState(r.db.WithContext(ctx), viewerID, targetID)
}

func snapshotState(tx *gorm.DB, viewerID, targetID uint) (*models.SocialState, error) {
	state := &models.SocialState{}

	var followerCount int64
	if err := tx.Model(&models.Follow{}).
		Where("following_id = ? AND active = ?", targetID, true).
		Count(&followerCount).Error; err != nil {
		return nil, err
	}
	state.FollowerCount = int(followerCount)

	var followingCount int64
	if err := tx.Model(&models.Follow{}).
		Where("follower_id = ? AND active = ?", viewerID, true).
		Count(&followingCount).Error; err != nil {
		return nil, err
	}
	state.FollowingCount = int(followingCount)

	if viewerID != 0 && viewerID != targetID {
		var count int64
		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ? AND active = ?", viewerID, targetID, true).
			Count(&count).Error; err != nil {
			return nil, err
		}
		state.IsFollowing = count > 0

		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND following_id = ? AND active = ?", targetID, viewerID, true).
			Count(&count).Error; err != nil {
			return nil, err
		}
		state.IsFollowedBy = count > 0
	}

	return state, nil
}

func (r *socialRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND active = ?", followerID, followingID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *socialRepository) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ? AND active = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *socialRepository) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND active = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *socialRepository) Followers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ? AND follows.active = ? AND users.active = ?", userID, true, true).
		Order("follows.created_at DESC, users.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *socialRepository) Following(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ? AND follows.active = ? AND users.active = ?", userID, true, true).
		Order("follows.created_at DESC, users.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}
