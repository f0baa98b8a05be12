package repository

import (
	"context"
	"testing"

	"meridian/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testDB opens an in-memory database with the full schema. TranslateError is
// on so unique-constraint violations come back as gorm.ErrDuplicatedKey, the
// same as against PostgreSQL.
func testDB(t *testing.T) *gorm.DB {
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

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, userID uint, text string) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, UserID: userID}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedComment(t *testing.T, db *gorm.DB, userID, postID uint, text string) *models.Comment {
	t.Helper()
	comment := &models.Comment{Text: text, UserID: userID, PostID: postID}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func seedReaction(t *testing.T, db *gorm.DB, userID, postID uint, kind models.ReactionKind) *models.Reaction {
	t.Helper()
	reaction := &models.Reaction{UserID: userID, PostID: postID, Kind: kind}
	require.NoError(t, db.Create(reaction).Error)
	return reaction
}

func testCtx() context.Context {
	return context.Background()
}
