// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"traveltales/internal/models"

	"gorm.io/gorm"
)

// FeedQuery describes one page of the public feed. All supplied filters
// combine with AND semantics. Page is 1-indexed.
type FeedQuery struct {
	Country  string
	Author   string
	Search   string
	Tag      string
	Sort     string
	Page     int
	Limit    int
	ViewerID uint
}

// Offset converts the 1-indexed page to a row offset.
func (q FeedQuery) Offset() int {
	page := q.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * q.Limit
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string, viewerID uint) (*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, viewerID uint) ([]*models.Post, error)
	List(ctx context.Context, q FeedQuery) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(post).Error
	})
}

// GetByID assembles the full detail view inside one read transaction so the
// post row, author social state and comment list observe the same snapshot.
// A post deactivated mid-read can therefore never produce a partial view.
func (r *postRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Post, error) {
	return r.getDetail(ctx, viewerID, "posts.id = ?", id)
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string, viewerID uint) (*models.Post, error) {
	return r.getDetail(ctx, viewerID, "posts.slug = ?", slug)
}

func (r *postRepository) getDetail(ctx context.Context, viewerID uint, cond string, arg interface{}) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.applyPostDetails(tx, viewerID).
			Preload("Author").
			Preload("Tags").
			Scopes(visiblePosts).
			Where(cond, arg).
			First(&post).Error; err != nil {
			return err
		}

		// Full newest-first comment list with authors, detail view only.
		return tx.Preload("User").
			Where("comments.post_id = ? AND comments.active = ?", post.ID, true).
			Order("comments.created_at DESC, comments.id DESC").
			Find(&post.CommentRecords).Error
	})
	if err != nil {
		return nil, err
	}

	r.hydrateAuthorSocial([]*models.Post{&post})
	return &post, nil
}

func (r *postRepository) GetByAuthorID(ctx context.Context, authorID uint, limit, offset int, viewerID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.applyPostDetails(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		Preload("Tags").
		Scopes(visiblePosts).
		Where("posts.author_id = ?", authorID).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	r.hydrateAuthorSocial(posts)
	return posts, nil
}

func (r *postRepository) List(ctx context.Context, q FeedQuery) ([]*models.Post, error) {
	var posts []*models.Post
	base := r.applyPostDetails(r.db.WithContext(ctx), q.ViewerID).
		Preload("Author").
		Preload("Tags").
		Scopes(visiblePosts)
	base = r.applyFilters(base, q)
	err := r.applySort(base, q.Sort).
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	r.hydrateAuthorSocial(posts)
	return posts, nil
}

// visiblePosts restricts reads to active posts whose author account is also
// active. Deactivating an account hides every post it wrote without touching
// the post rows themselves.
func visiblePosts(db *gorm.DB) *gorm.DB {
	return db.Where("posts.active = ?", true).
		Where("posts.author_id IN (SELECT id FROM users WHERE users.active = ?)", true)
}

// applyFilters ANDs every supplied filter predicate. Substring matches are
// case-insensitive via LOWER on both sides, which behaves identically on
// PostgreSQL and the SQLite test store.
func (r *postRepository) applyFilters(db *gorm.DB, q FeedQuery) *gorm.DB {
	if q.Country != "" {
		db = db.Where("posts.country_name = ?", q.Country)
	}
	if q.Author != "" {
		like := "%" + q.Author + "%"
		db = db.Where(
			"posts.author_id IN (SELECT id FROM users WHERE active = ? AND "+
				"(LOWER(username) LIKE LOWER(?) OR LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)))",
			true, like, like, like,
		)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		db = db.Where("LOWER(posts.title) LIKE LOWER(?) OR LOWER(posts.content) LIKE LOWER(?)", like, like)
	}
	if q.Tag != "" {
		db = db.Where(
			"posts.id IN (SELECT post_tags.post_id FROM post_tags "+
				"JOIN tags ON tags.id = post_tags.tag_id "+
				"WHERE tags.name = ? AND post_tags.active = ?)",
			q.Tag, true,
		)
	}
	return db
}

// applySort appends the ORDER BY clause for the requested sort key.
// like_count, comment_count and popularity are SELECT aliases from
// applyPostDetails; PostgreSQL only accepts an output alias in ORDER BY when
// it stands alone, so the weighted score is computed in the SELECT list
// rather than in the ORDER BY expression. Every sort carries posts.id DESC
// as a tiebreaker so LIMIT/OFFSET pagination is deterministic when scores
// tie.
func (r *postRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "newest":
		return db.Order("posts.created_at DESC, posts.id DESC")
	case "most_liked":
		return db.Order("like_count DESC, posts.id DESC")
	case "most_commented":
		return db.Order("comment_count DESC, posts.id DESC")
	default: // "popular" and anything unrecognized
		return db.Order("popularity DESC, posts.id DESC")
	}
}

// applyPostDetails adds scalar subqueries so counts, viewer-relative like
// state and author-relative social state arrive in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id AND likes.active = true) as like_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.active = true) as comment_count, " +
		"((SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id AND likes.active = true) + " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.active = true) * 0.5) as popularity, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.following_id = posts.author_id AND follows.active = true) as author_follower_count, " +
		"(SELECT COUNT(*) FROM follows WHERE follows.follower_id = posts.author_id AND follows.active = true) as author_following_count"

	if viewerID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ? AND likes.active = true) as liked"+
			", EXISTS(SELECT 1 FROM follows WHERE follows.follower_id = ? AND follows.following_id = posts.author_id AND follows.active = true) as author_is_following"+
			", EXISTS(SELECT 1 FROM follows WHERE follows.follower_id = posts.author_id AND follows.following_id = ? AND follows.active = true) as author_is_followed_by",
			viewerID, viewerID, viewerID)
	}

	return db.Select(selectQuery +
		", false as liked, false as author_is_following, false as author_is_followed_by")
}

// hydrateAuthorSocial copies the scanned author-relative aliases onto the
// preloaded Author struct so the social snapshot travels with the author in
// API responses.
func (r *postRepository) hydrateAuthorSocial(posts []*models.Post) {
	for _, p := range posts {
		p.Author.FollowerCount = p.AuthorFollowerCount
		p.Author.FollowingCount = p.AuthorFollowingCount
		p.Author.IsFollowing = p.AuthorIsFollowing
		p.Author.IsFollowedBy = p.AuthorIsFollowedBy
	}
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(post).Error
	})
}

// Delete soft-deletes: the row stays, every read filters it out.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Post{}).
			Where("id = ? AND active = ?", id, true).
			Update("active", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
