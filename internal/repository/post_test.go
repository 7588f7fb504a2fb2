package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"traveltales/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_ListPopularSort(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	var fans []*models.User
	for i := 0; i < 5; i++ {
		fans = append(fans, createTestUser(t, db, fmt.Sprintf("fan%d", i)))
	}

	// p1 scores 5.0 from likes alone, p2 scores 2 + 8*0.5 = 6.0.
	p1 := createTestPost(t, db, author, "All likes", "Italy")
	likePost(t, db, p1, fans...)
	p2 := createTestPost(t, db, author, "Conversation starter", "Italy")
	likePost(t, db, p2, fans[0], fans[1])
	commentOn(t, db, p2, fans[2], 8)

	posts, err := repo.List(ctx, FeedQuery{Sort: "popular", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, p2.ID, posts[0].ID)
	assert.Equal(t, p1.ID, posts[1].ID)

	assert.Equal(t, 2, posts[0].LikeCount)
	assert.Equal(t, 8, posts[0].CommentCount)
	assert.Equal(t, 5, posts[1].LikeCount)

	// most_liked flips the order, most_commented keeps it.
	posts, err = repo.List(ctx, FeedQuery{Sort: "most_liked", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, p1.ID, posts[0].ID)

	posts, err = repo.List(ctx, FeedQuery{Sort: "most_commented", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, p2.ID, posts[0].ID)
}

// PostgreSQL only accepts an output alias in ORDER BY when it stands alone;
// arithmetic on the alias raises an undefined-column error there even though
// the SQLite test store tolerates it. The weighted score therefore has to be
// computed in the SELECT list and ordered by name.
func TestPostRepository_PopularSortOrdersByPlainAlias(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := &postRepository{db: db}

	dry := db.Session(&gorm.Session{DryRun: true})
	stmt := repo.applySort(repo.applyPostDetails(dry.Model(&models.Post{}), 0), "popular").
		Find(&[]*models.Post{}).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, "as popularity")
	require.Contains(t, sql, "ORDER BY")
	orderBy := sql[strings.Index(sql, "ORDER BY"):]
	assert.Contains(t, orderBy, "popularity DESC")
	assert.NotContains(t, orderBy, "like_count +")
}

func TestPostRepository_ListNewestSort(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	first := createTestPost(t, db, author, "First trip", "Chile")
	second := createTestPost(t, db, author, "Second trip", "Bolivia")
	third := createTestPost(t, db, author, "Third trip", "Peru")

	// Identical timestamps resolve by id descending, so insertion order reverses.
	posts, err := repo.List(ctx, FeedQuery{Sort: "newest", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, third.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
	assert.Equal(t, first.ID, posts[2].ID)
}

func TestPostRepository_ListFiltersCombine(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	kate := createTestUser(t, db, "wanderlust_kate")
	require.NoError(t, db.Model(kate).Updates(map[string]interface{}{
		"first_name": "Kate", "last_name": "Moreno",
	}).Error)
	liam := createTestUser(t, db, "liam")

	match := createTestPost(t, db, kate, "Hiking the Dolomites", "Italy")
	createTestPost(t, db, kate, "Hiking in Patagonia", "Argentina") // wrong country
	createTestPost(t, db, kate, "Roman food tour", "Italy")         // wrong search
	createTestPost(t, db, liam, "Hiking near Verona", "Italy")      // wrong author

	posts, err := repo.List(ctx, FeedQuery{
		Country: "Italy",
		Author:  "kate",
		Search:  "hiking",
		Page:    1,
		Limit:   10,
	})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, match.ID, posts[0].ID)

	// Author substring also matches real names, case-insensitively.
	posts, err = repo.List(ctx, FeedQuery{Author: "MORENO", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	// Country is an exact match, not a substring.
	posts, err = repo.List(ctx, FeedQuery{Country: "Ital", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_ListTagFilter(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	tagRepo := NewTagRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	tagged := createTestPost(t, db, author, "Surf diary", "Australia")
	createTestPost(t, db, author, "City break", "Australia")

	tags, err := tagRepo.GetOrCreate(ctx, []string{"surfing", "ocean"})
	require.NoError(t, err)
	require.NoError(t, tagRepo.ReplaceForPost(ctx, tagged, tags))

	posts, err := repo.List(ctx, FeedQuery{Tag: "surfing", Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, tagged.ID, posts[0].ID)
	assert.Len(t, posts[0].Tags, 2)

	posts, err = repo.List(ctx, FeedQuery{Tag: "skiing", Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_PaginationDeterministic(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	total := 7
	for i := 0; i < total; i++ {
		createTestPost(t, db, author, fmt.Sprintf("Trip %d", i), "Kenya")
	}

	// Every post scores zero, so only the id tiebreaker orders the feed.
	// Walking the pages must yield each post exactly once.
	seen := make(map[uint]bool)
	var walked int
	for page := 1; page <= 3; page++ {
		posts, err := repo.List(ctx, FeedQuery{Sort: "popular", Page: page, Limit: 3})
		require.NoError(t, err)
		for _, p := range posts {
			assert.False(t, seen[p.ID], "post %d returned twice", p.ID)
			seen[p.ID] = true
			walked++
		}
	}
	assert.Equal(t, total, walked)

	posts, err := repo.List(ctx, FeedQuery{Sort: "popular", Page: 4, Limit: 3})
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepository_ViewerAnnotations(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	social := NewSocialRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	post := createTestPost(t, db, author, "Sahara crossing", "Morocco")

	likePost(t, db, post, viewer)
	_, err := social.Follow(ctx, viewer.ID, author.ID)
	require.NoError(t, err)
	_, err = social.Follow(ctx, author.ID, viewer.ID)
	require.NoError(t, err)

	posts, err := repo.List(ctx, FeedQuery{Page: 1, Limit: 10, ViewerID: viewer.ID})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.True(t, posts[0].Liked)
	assert.Equal(t, "author", posts[0].Author.Username)
	assert.True(t, posts[0].Author.IsFollowing)
	assert.True(t, posts[0].Author.IsFollowedBy)
	assert.Equal(t, 1, posts[0].Author.FollowerCount)
	assert.Equal(t, 1, posts[0].Author.FollowingCount)

	// Anonymous viewers get counts but no viewer-relative flags.
	posts, err = repo.List(ctx, FeedQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.False(t, posts[0].Liked)
	assert.False(t, posts[0].Author.IsFollowing)
	assert.Equal(t, 1, posts[0].Author.FollowerCount)
}

func TestPostRepository_DetailView(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	post := createTestPost(t, db, author, "Night train to Riga", "Latvia")
	likePost(t, db, post, viewer)
	commentOn(t, db, post, viewer, 3)

	got, err := repo.GetBySlug(ctx, post.Slug, viewer.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, 1, got.LikeCount)
	assert.Equal(t, 3, got.CommentCount)
	assert.True(t, got.Liked)
	require.Len(t, got.CommentRecords, 3)
	assert.Equal(t, "comment 2", got.CommentRecords[0].Content)
	assert.Equal(t, "viewer", got.CommentRecords[0].User.Username)

	byID, err := repo.GetByID(ctx, post.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, post.Slug, byID.Slug)
	assert.False(t, byID.Liked)

	_, err = repo.GetBySlug(ctx, "no-such-slug", 0)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_DeleteHidesEverywhere(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	keep := createTestPost(t, db, author, "Keeper", "Iceland")
	gone := createTestPost(t, db, author, "Goner", "Iceland")

	require.NoError(t, repo.Delete(ctx, gone.ID))

	posts, err := repo.List(ctx, FeedQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, keep.ID, posts[0].ID)

	_, err = repo.GetByID(ctx, gone.ID, 0)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The row survives for audit, only reads hide it.
	var raw models.Post
	require.NoError(t, db.First(&raw, gone.ID).Error)
	assert.False(t, raw.Active)

	// Deleting again reports NotFound.
	err = repo.Delete(ctx, gone.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_DeactivatedAuthorHidesPosts(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	kate := createTestUser(t, db, "kate")
	liam := createTestUser(t, db, "liam")
	katePost := createTestPost(t, db, kate, "Kate solo", "Ghana")
	liamPost := createTestPost(t, db, liam, "Liam solo", "Benin")

	require.NoError(t, users.Delete(ctx, kate.ID))

	posts, err := repo.List(ctx, FeedQuery{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, liamPost.ID, posts[0].ID)

	_, err = repo.GetByID(ctx, katePost.ID, 0)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.GetBySlug(ctx, katePost.Slug, 0)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	byAuthor, err := repo.GetByAuthorID(ctx, kate.ID, 10, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, byAuthor)

	// The post rows stay active; only the author's flag hides them.
	var raw models.Post
	require.NoError(t, db.First(&raw, katePost.ID).Error)
	assert.True(t, raw.Active)
}

func TestPostRepository_GetByAuthorID(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	kate := createTestUser(t, db, "kate")
	liam := createTestUser(t, db, "liam")
	createTestPost(t, db, kate, "Kate one", "Ghana")
	createTestPost(t, db, kate, "Kate two", "Togo")
	createTestPost(t, db, liam, "Liam one", "Benin")

	posts, err := repo.GetByAuthorID(ctx, kate.ID, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, kate.ID, p.AuthorID)
		assert.Equal(t, "kate", p.Author.Username)
	}
	// Newest first by the id tiebreaker.
	assert.Equal(t, "Kate two", posts[0].Title)
}
