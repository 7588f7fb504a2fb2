package repository

import (
	"context"
	"fmt"
	"testing"

	"traveltales/internal/database"
	"traveltales/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory store with the full schema. Every test
// gets its own database, so tests stay independent and parallel-safe.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    username + "@example.com",
		Password: "hashed-password",
		Username: username,
		Active:   true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.User, title, country string) *models.Post {
	t.Helper()

	post := &models.Post{
		AuthorID:    author.ID,
		Title:       title,
		Slug:        fmt.Sprintf("%s-%d-%d", title, author.ID, len(title)),
		Content:     "Content of " + title,
		CountryName: country,
		Active:      true,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func likePost(t *testing.T, db *gorm.DB, post *models.Post, users ...*models.User) {
	t.Helper()

	repo := NewEngagementRepository(db)
	for _, u := range users {
		_, err := repo.ToggleLike(context.Background(), post.ID, u.ID)
		require.NoError(t, err)
	}
}

func commentOn(t *testing.T, db *gorm.DB, post *models.Post, user *models.User, n int) {
	t.Helper()

	repo := NewEngagementRepository(db)
	for i := 0; i < n; i++ {
		_, err := repo.AddComment(context.Background(), &models.Comment{
			PostID:  post.ID,
			UserID:  user.ID,
			Content: fmt.Sprintf("comment %d", i),
			Active:  true,
		})
		require.NoError(t, err)
	}
}
