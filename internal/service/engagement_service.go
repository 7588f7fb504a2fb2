package service

import (
	"context"
	"errors"
	"strings"

	"traveltales/internal/models"
	"traveltales/internal/observability"
	"traveltales/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 2000

// EngagementService wraps the engagement ledger with input validation and
// the NotFound mapping the handlers rely on.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
}

// LikeResult is the response payload for like and unlike operations.
type LikeResult struct {
	PostID    uint  `json:"post_id"`
	LikeCount int64 `json:"like_count"`
	Liked     bool  `json:"liked"`
}

type AddCommentInput struct {
	PostID  uint
	UserID  uint
	Content string
}

// CommentResult carries the created comment together with the post's
// refreshed comment count.
type CommentResult struct {
	Comment      *models.Comment `json:"comment"`
	CommentCount int64           `json:"comment_count"`
}

func NewEngagementService(engagementRepo repository.EngagementRepository) *EngagementService {
	return &EngagementService{engagementRepo: engagementRepo}
}

func (s *EngagementService) LikePost(ctx context.Context, postID, userID uint) (*LikeResult, error) {
	count, err := s.engagementRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		observability.RecordEngagement("like", "error")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}
	observability.RecordEngagement("like", "ok")
	return &LikeResult{PostID: postID, LikeCount: count, Liked: true}, nil
}

func (s *EngagementService) UnlikePost(ctx context.Context, postID, userID uint) (*LikeResult, error) {
	count, err := s.engagementRepo.UntoggleLike(ctx, postID, userID)
	if err != nil {
		observability.RecordEngagement("unlike", "error")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Either the post is gone or there is no active like to remove.
			return nil, models.NewNotFoundError("Like", postID)
		}
		return nil, models.NewInternalError(err)
	}
	observability.RecordEngagement("unlike", "ok")
	return &LikeResult{PostID: postID, LikeCount: count, Liked: false}, nil
}

func (s *EngagementService) AddComment(ctx context.Context, in AddCommentInput) (*CommentResult, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 2000 characters)")
	}

	comment := &models.Comment{
		PostID:  in.PostID,
		UserID:  in.UserID,
		Content: content,
		Active:  true,
	}
	count, err := s.engagementRepo.AddComment(ctx, comment)
	if err != nil {
		observability.RecordEngagement("comment", "error")
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", in.PostID)
		}
		return nil, models.NewInternalError(err)
	}
	observability.RecordEngagement("comment", "ok")
	return &CommentResult{Comment: comment, CommentCount: count}, nil
}

func (s *EngagementService) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	limit = clampLimit(limit)
	comments, err := s.engagementRepo.ListComments(ctx, postID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
