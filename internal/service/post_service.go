package service

import (
	"context"
	"errors"
	"strings"

	"traveltales/internal/models"
	"traveltales/internal/observability"
	"traveltales/internal/repository"
	"traveltales/internal/validation"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// contentPolicy keeps user-generated HTML to a safe subset.
// excerptPolicy strips all markup so excerpts are plain text.
var (
	contentPolicy = bluemonday.UGCPolicy()
	excerptPolicy = bluemonday.StrictPolicy()
)

const (
	maxTitleLen   = 200
	maxContentLen = 50000
	maxTags       = 10
	excerptRunes  = 100
)

type PostService struct {
	postRepo repository.PostRepository
	tagRepo  repository.TagRepository
}

type CreatePostInput struct {
	AuthorID    uint
	Title       string
	Content     string
	CountryName string
	ImageURL    string
	Tags        []string
}

type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       string
	Content     string
	CountryName string
	ImageURL    string
	Tags        []string
}

type ListFeedInput struct {
	Country  string
	Author   string
	Search   string
	Tag      string
	Sort     string
	Page     int
	Limit    int
	ViewerID uint
}

func NewPostService(postRepo repository.PostRepository, tagRepo repository.TagRepository) *PostService {
	return &PostService{postRepo: postRepo, tagRepo: tagRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateCountryName(in.CountryName); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 50000 characters)")
	}
	tagNames, err := normalizeTagNames(in.Tags)
	if err != nil {
		return nil, err
	}

	content := contentPolicy.Sanitize(in.Content)
	post := &models.Post{
		AuthorID:    in.AuthorID,
		Title:       strings.TrimSpace(in.Title),
		Slug:        makeSlug(in.Title),
		Content:     content,
		Excerpt:     makeExcerpt(content),
		ImageURL:    strings.TrimSpace(in.ImageURL),
		CountryName: strings.TrimSpace(in.CountryName),
		Active:      true,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	if len(tagNames) > 0 {
		tags, err := s.tagRepo.GetOrCreate(ctx, tagNames)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if err := s.tagRepo.ReplaceForPost(ctx, post, tags); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	return s.getPost(ctx, post.ID, in.AuthorID)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.getPost(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != in.UserID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if in.Title != "" && in.Title != post.Title {
		if err := validation.ValidatePostTitle(in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = strings.TrimSpace(in.Title)
		// The slug follows the title so shared links stay descriptive.
		post.Slug = makeSlug(in.Title)
	}
	if in.Content != "" {
		if len(in.Content) > maxContentLen {
			return nil, models.NewValidationError("Content too long (max 50000 characters)")
		}
		post.Content = contentPolicy.Sanitize(in.Content)
		post.Excerpt = makeExcerpt(post.Content)
	}
	if in.CountryName != "" {
		if err := validation.ValidateCountryName(in.CountryName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.CountryName = strings.TrimSpace(in.CountryName)
	}
	if in.ImageURL != "" {
		post.ImageURL = strings.TrimSpace(in.ImageURL)
	}

	// Scan-only annotation fields are ignored on write, safe to Save whole.
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	if in.Tags != nil {
		tagNames, err := normalizeTagNames(in.Tags)
		if err != nil {
			return nil, err
		}
		tags, err := s.tagRepo.GetOrCreate(ctx, tagNames)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if err := s.tagRepo.ReplaceForPost(ctx, post, tags); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	return s.getPost(ctx, post.ID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.getPost(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", postID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (s *PostService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	return s.getPost(ctx, postID, viewerID)
}

func (s *PostService) GetPostBySlug(ctx context.Context, slugStr string, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, slugStr, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", slugStr)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) GetUserPosts(ctx context.Context, authorID uint, limit, offset int, viewerID uint) ([]*models.Post, error) {
	limit = clampLimit(limit)
	posts, err := s.postRepo.GetByAuthorID(ctx, authorID, limit, offset, viewerID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListFeed runs the public feed query. Unknown sort keys fall back to
// popular, so a stale client never gets an error for a sort it invented.
func (s *PostService) ListFeed(ctx context.Context, in ListFeedInput) ([]*models.Post, error) {
	sort := normalizeSort(in.Sort)
	observability.RecordFeedQuery(sort)

	posts, err := s.postRepo.List(ctx, repository.FeedQuery{
		Country:  strings.TrimSpace(in.Country),
		Author:   strings.TrimSpace(in.Author),
		Search:   strings.TrimSpace(in.Search),
		Tag:      strings.ToLower(strings.TrimSpace(in.Tag)),
		Sort:     sort,
		Page:     in.Page,
		Limit:    clampLimit(in.Limit),
		ViewerID: in.ViewerID,
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *PostService) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.tagRepo.ListAll(ctx)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

func (s *PostService) getPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func normalizeSort(sort string) string {
	switch sort {
	case "newest", "most_liked", "most_commented", "popular":
		return sort
	default:
		return "popular"
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 50 {
		return 50
	}
	return limit
}

func normalizeTagNames(names []string) ([]string, error) {
	if len(names) > maxTags {
		return nil, models.NewValidationError("Too many tags (max 10)")
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if err := validation.ValidateTagName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		out = append(out, name)
	}
	return out, nil
}

// makeSlug appends a short random suffix so identical titles never collide
// on the unique slug column.
func makeSlug(title string) string {
	return slug.Make(title) + "-" + uuid.NewString()[:8]
}

// makeExcerpt strips markup and truncates at a rune boundary.
func makeExcerpt(content string) string {
	text := strings.Join(strings.Fields(excerptPolicy.Sanitize(content)), " ")
	runes := []rune(text)
	if len(runes) <= excerptRunes {
		return text
	}
	return string(runes[:excerptRunes]) + "..."
}
