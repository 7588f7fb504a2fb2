package repository

import (
	"context"

	"traveltales/internal/models"

	"gorm.io/gorm"
)

// EngagementRepository owns like rows, comment rows and the counts derived
// from them. Counts are always recomputed from active rows, never stored.
type EngagementRepository interface {
	ToggleLike(ctx context.Context, postID, userID uint) (likeCount int64, err error)
	UntoggleLike(ctx context.Context, postID, userID uint) (likeCount int64, err error)
	AddComment(ctx context.Context, comment *models.Comment) (commentCount int64, err error)
	ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error)
	CountLikes(ctx context.Context, postID uint) (int64, error)
	CountComments(ctx context.Context, postID uint) (int64, error)
	IsLiked(ctx context.Context, postID, userID uint) (bool, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// requireActivePost returns gorm.ErrRecordNotFound when the post is absent
// or soft-deleted. Runs inside the caller's transaction.
func requireActivePost(tx *gorm.DB, postID uint) error {
	var count int64
	if err := tx.Model(&models.Post{}).
		Where("id = ? AND active = ?", postID, true).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func countActiveLikes(tx *gorm.DB, postID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.Like{}).
		Where("post_id = ? AND active = ?", postID, true).
		Count(&count).Error
	return count, err
}

func countActiveComments(tx *gorm.DB, postID uint) (int64, error) {
	var count int64
	err := tx.Model(&models.Comment{}).
		Where("post_id = ? AND active = ?", postID, true).
		Count(&count).Error
	return count, err
}

// ToggleLike idempotently activates the (post, user) like row. The unique
// pair constraint plus ON CONFLICT DO UPDATE guarantees at most one row per
// pair ever exists: a fresh like inserts, a repeated or revived like flips
// active back on. Existence check, upsert and recount run in one transaction.
func (r *engagementRepository) ToggleLike(ctx context.Context, postID, userID uint) (int64, error) {
	var likeCount int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireActivePost(tx, postID); err != nil {
			return err
		}

		if err := tx.Exec(
			`INSERT INTO likes (post_id, user_id, active, created_at, updated_at)
			 VALUES (?, ?, true, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
			 ON CONFLICT (post_id, user_id)
			 DO UPDATE SET active = true, updated_at = CURRENT_TIMESTAMP`,
			postID, userID,
		).Error; err != nil {
			return err
		}

		var err error
		likeCount, err = countActiveLikes(tx, postID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return likeCount, nil
}

// UntoggleLike deactivates the viewer's like. No active row to flip is
// NotFound, whether the pair never liked or already unliked.
func (r *engagementRepository) UntoggleLike(ctx context.Context, postID, userID uint) (int64, error) {
	var likeCount int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireActivePost(tx, postID); err != nil {
			return err
		}

		result := tx.Model(&models.Like{}).
			Where("post_id = ? AND user_id = ? AND active = ?", postID, userID, true).
			Update("active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var err error
		likeCount, err = countActiveLikes(tx, postID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return likeCount, nil
}

// AddComment inserts a new comment row. Comments are never toggled; every
// call appends. Returns the recomputed active comment count and leaves the
// inserted comment hydrated with its author.
func (r *engagementRepository) AddComment(ctx context.Context, comment *models.Comment) (int64, error) {
	var commentCount int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireActivePost(tx, comment.PostID); err != nil {
			return err
		}

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		if err := tx.First(&comment.User, comment.UserID).Error; err != nil {
			return err
		}

		var err error
		commentCount, err = countActiveComments(tx, comment.PostID)
		return err
	})
	if err != nil {
		return 0, err
	}
	return commentCount, nil
}

func (r *engagementRepository) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("post_id = ? AND active = ?", postID, true).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *engagementRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	return countActiveLikes(r.db.WithContext(ctx), postID)
}

func (r *engagementRepository) CountComments(ctx context.Context, postID uint) (int64, error) {
	return countActiveComments(r.db.WithContext(ctx), postID)
}

func (r *engagementRepository) IsLiked(ctx context.Context, postID, userID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND user_id = ? AND active = ?", postID, userID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
