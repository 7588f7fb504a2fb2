// Package bootstrap wires up process-wide runtime dependencies shared by the
// server and CLI entry points.
package bootstrap

import (
	"fmt"

	"traveltales/internal/cache"
	"traveltales/internal/config"
	"traveltales/internal/database"
	"traveltales/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates an empty database with demo users, posts and
	// an engagement mesh. Intended for development environments only.
	SeedDemoData bool
}

// InitRuntime connects to the database and Redis and optionally seeds demo
// data. Redis being unreachable is not fatal; the returned client is nil and
// dependent features degrade.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seedIfEmpty(db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

// seedIfEmpty seeds only a fresh database, so restarting a dev server does
// not pile more demo data on top of existing rows.
func seedIfEmpty(db *gorm.DB) error {
	var userCount int64
	if err := db.Table("users").Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}
	return seed.Seed(db, seed.Options{})
}
