// Package bootstrap initializes runtime dependencies shared by the server
// and tooling commands.
package bootstrap

import (
	"fmt"
	"log"
	"strings"

	"meridian/internal/cache"
	"meridian/internal/config"
	"meridian/internal/database"
	"meridian/internal/models"
	"meridian/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData populates an empty development database with generated
	// users and posts. Never applies outside the development environment.
	SeedDemoData bool
}

// InitRuntime connects to DB and Redis and optionally runs development
// seeding.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seedDevDemoData(cfg, db); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

// seedDevDemoData fills an empty development database with a small data set
// so the API is browsable immediately. A non-empty users table means a
// developer already has data; leave it alone.
func seedDevDemoData(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") {
		return nil
	}

	var users int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	log.Println("Empty development database, seeding demo data")
	return seed.NewSeeder(db).Seed(seed.Options{NumUsers: 10, NumPosts: 40})
}
