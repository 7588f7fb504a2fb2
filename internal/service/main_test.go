package service

import (
	"context"
	"errors"
	"testing"

	"traveltales/internal/models"
	"traveltales/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Hand-written stubs per repository interface. Each test overrides only the
// functions it cares about.

type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint, uint) (*models.Post, error)
	getBySlugFn     func(context.Context, string, uint) (*models.Post, error)
	getByAuthorIDFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listFn          func(context.Context, repository.FeedQuery) ([]*models.Post, error)
	updateFn        func(context.Context, *models.Post) error
	deleteFn        func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, viewerID)
}
func (s *postRepoStub) GetBySlug(ctx context.Context, slug string, viewerID uint) (*models.Post, error) {
	return s.getBySlugFn(ctx, slug, viewerID)
}
func (s *postRepoStub) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, viewerID uint) ([]*models.Post, error) {
	return s.getByAuthorIDFn(ctx, authorID, limit, offset, viewerID)
}
func (s *postRepoStub) List(ctx context.Context, q repository.FeedQuery) ([]*models.Post, error) {
	return s.listFn(ctx, q)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, post *models.Post) error {
			post.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, AuthorID: 1}, nil
		},
		getBySlugFn: func(_ context.Context, _ string, _ uint) (*models.Post, error) {
			return &models.Post{ID: 1, AuthorID: 1}, nil
		},
		getByAuthorIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		listFn:   func(_ context.Context, _ repository.FeedQuery) ([]*models.Post, error) { return nil, nil },
		updateFn: func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn: func(_ context.Context, _ uint) error { return nil },
	}
}

type tagRepoStub struct {
	listAllFn        func(context.Context) ([]models.Tag, error)
	getOrCreateFn    func(context.Context, []string) ([]models.Tag, error)
	replaceForPostFn func(context.Context, *models.Post, []models.Tag) error
}

func (s *tagRepoStub) ListAll(ctx context.Context) ([]models.Tag, error) {
	return s.listAllFn(ctx)
}
func (s *tagRepoStub) GetOrCreate(ctx context.Context, names []string) ([]models.Tag, error) {
	return s.getOrCreateFn(ctx, names)
}
func (s *tagRepoStub) ReplaceForPost(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return s.replaceForPostFn(ctx, post, tags)
}

func noopTagRepo() *tagRepoStub {
	return &tagRepoStub{
		listAllFn: func(_ context.Context) ([]models.Tag, error) { return nil, nil },
		getOrCreateFn: func(_ context.Context, names []string) ([]models.Tag, error) {
			tags := make([]models.Tag, len(names))
			for i, n := range names {
				tags[i] = models.Tag{ID: uint(i + 1), Name: n}
			}
			return tags, nil
		},
		replaceForPostFn: func(_ context.Context, _ *models.Post, _ []models.Tag) error { return nil },
	}
}

type engagementRepoStub struct {
	toggleLikeFn    func(context.Context, uint, uint) (int64, error)
	untoggleLikeFn  func(context.Context, uint, uint) (int64, error)
	addCommentFn    func(context.Context, *models.Comment) (int64, error)
	listCommentsFn  func(context.Context, uint, int, int) ([]*models.Comment, error)
	countLikesFn    func(context.Context, uint) (int64, error)
	countCommentsFn func(context.Context, uint) (int64, error)
	isLikedFn       func(context.Context, uint, uint) (bool, error)
}

func (s *engagementRepoStub) ToggleLike(ctx context.Context, postID, userID uint) (int64, error) {
	return s.toggleLikeFn(ctx, postID, userID)
}
func (s *engagementRepoStub) UntoggleLike(ctx context.Context, postID, userID uint) (int64, error) {
	return s.untoggleLikeFn(ctx, postID, userID)
}
func (s *engagementRepoStub) AddComment(ctx context.Context, comment *models.Comment) (int64, error) {
	return s.addCommentFn(ctx, comment)
}
func (s *engagementRepoStub) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listCommentsFn(ctx, postID, limit, offset)
}
func (s *engagementRepoStub) CountLikes(ctx context.Context, postID uint) (int64, error) {
	return s.countLikesFn(ctx, postID)
}
func (s *engagementRepoStub) CountComments(ctx context.Context, postID uint) (int64, error) {
	return s.countCommentsFn(ctx, postID)
}
func (s *engagementRepoStub) IsLiked(ctx context.Context, postID, userID uint) (bool, error) {
	return s.isLikedFn(ctx, postID, userID)
}

func noopEngagementRepo() *engagementRepoStub {
	return &engagementRepoStub{
		toggleLikeFn:   func(_ context.Context, _, _ uint) (int64, error) { return 1, nil },
		untoggleLikeFn: func(_ context.Context, _, _ uint) (int64, error) { return 0, nil },
		addCommentFn: func(_ context.Context, comment *models.Comment) (int64, error) {
			comment.ID = 1
			return 1, nil
		},
		listCommentsFn:  func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) { return nil, nil },
		countLikesFn:    func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		countCommentsFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		isLikedFn:       func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
	}
}

type socialRepoStub struct {
	followFn         func(context.Context, uint, uint) (*models.SocialState, error)
	unfollowFn       func(context.Context, uint, uint) (*models.SocialState, error)
	stateFn          func(context.Context, uint, uint) (*models.SocialState, error)
	isFollowingFn    func(context.Context, uint, uint) (bool, error)
	followerCountFn  func(context.Context, uint) (int64, error)
	followingCountFn func(context.Context, uint) (int64, error)
	followersFn      func(context.Context, uint, int, int) ([]*models.User, error)
	followingFn      func(context.Context, uint, int, int) ([]*models.User, error)
}

func (s *socialRepoStub) Follow(ctx context.Context, followerID, followingID uint) (*models.SocialState, error) {
	return s.followFn(ctx, followerID, followingID)
}
func (s *socialRepoStub) Unfollow(ctx context.Context, followerID, followingID uint) (*models.SocialState, error) {
	return s.unfollowFn(ctx, followerID, followingID)
}
func (s *socialRepoStub) State(ctx context.Context, viewerID, targetID uint) (*models.SocialState, error) {
	return s.stateFn(ctx, viewerID, targetID)
}
func (s *socialRepoStub) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *socialRepoStub) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	return s.followerCountFn(ctx, userID)
}
func (s *socialRepoStub) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	return s.followingCountFn(ctx, userID)
}
func (s *socialRepoStub) Followers(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	return s.followersFn(ctx, userID, limit, offset)
}
func (s *socialRepoStub) Following(ctx context.Context, userID uint, limit, offset int) ([]*models.User, error) {
	return s.followingFn(ctx, userID, limit, offset)
}

func noopSocialRepo() *socialRepoStub {
	return &socialRepoStub{
		followFn: func(_ context.Context, _, _ uint) (*models.SocialState, error) {
			return &models.SocialState{}, nil
		},
		unfollowFn: func(_ context.Context, _, _ uint) (*models.SocialState, error) {
			return &models.SocialState{}, nil
		},
		stateFn: func(_ context.Context, _, _ uint) (*models.SocialState, error) {
			return &models.SocialState{}, nil
		},
		isFollowingFn:    func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		followerCountFn:  func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		followingCountFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		followersFn:      func(_ context.Context, _ uint, _, _ int) ([]*models.User, error) { return nil, nil },
		followingFn:      func(_ context.Context, _ uint, _, _ int) ([]*models.User, error) { return nil, nil },
	}
}

type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	createFn        func(context.Context, *models.User) error
	updateFn        func(context.Context, *models.User) error
	deleteFn        func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "tester"}, nil
		},
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		updateFn:        func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

// assertNotFoundError asserts that err is an AppError with code NOT_FOUND.
func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}
