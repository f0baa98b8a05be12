package seed

import (
	"testing"

	"meridian/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func seedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.PostImage{},
		&models.Comment{},
		&models.Reaction{},
	))
	return db
}

func TestSeed(t *testing.T) {
	db := seedTestDB(t)
	s := NewSeeder(db)

	require.NoError(t, s.Seed(Options{NumUsers: 5, NumPosts: 10, ShouldClean: true}))

	var userCount, postCount int64
	require.NoError(t, db.Model(&models.User{}).Count(&userCount).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&postCount).Error)
	assert.Equal(t, int64(5), userCount)
	assert.Equal(t, int64(10), postCount)

	// No (user, post) pair may hold more than one reaction.
	type pair struct {
		UserID uint
		PostID uint
		N      int64
	}
	var dupes []pair
	require.NoError(t, db.Model(&models.Reaction{}).
		Select("user_id, post_id, COUNT(*) as n").
		Group("user_id, post_id").
		Having("COUNT(*) > 1").
		Scan(&dupes).Error)
	assert.Empty(t, dupes)
}

func TestClearAll(t *testing.T) {
	db := seedTestDB(t)
	s := NewSeeder(db)
	require.NoError(t, s.Seed(Options{NumUsers: 3, NumPosts: 5}))

	require.NoError(t, s.ClearAll())

	for _, model := range []any{
		&models.User{}, &models.Post{}, &models.Comment{}, &models.Reaction{},
	} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}
