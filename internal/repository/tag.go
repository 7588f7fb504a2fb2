package repository

import (
	"context"
	"strings"

	"traveltales/internal/cache"
	"traveltales/internal/models"

	"gorm.io/gorm"
)

// TagRepository manages the tag vocabulary and post-tag assignments.
type TagRepository interface {
	ListAll(ctx context.Context) ([]models.Tag, error)
	GetOrCreate(ctx context.Context, names []string) ([]models.Tag, error)
	ReplaceForPost(ctx context.Context, post *models.Post, tags []models.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) ListAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := cache.CacheAside(ctx, cache.TagListKey, &tags, cache.TagListTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// GetOrCreate resolves each name to a tag row, inserting missing ones.
// Names arrive normalized to lowercase; duplicates within the slice collapse.
func (r *tagRepository) GetOrCreate(ctx context.Context, names []string) ([]models.Tag, error) {
	seen := make(map[string]struct{}, len(names))
	tags := make([]models.Tag, 0, len(names))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}

			var tag models.Tag
			if err := tx.Where("name = ?", name).
				Attrs(models.Tag{Name: name}).
				FirstOrCreate(&tag).Error; err != nil {
				return err
			}
			tags = append(tags, tag)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateTags(ctx)
	return tags, nil
}

// ReplaceForPost swaps the post's tag set for the given tags.
func (r *tagRepository) ReplaceForPost(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Model(post).Association("Tags").Replace(tags)
	})
}
