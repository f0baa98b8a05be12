package service

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"meridian/internal/models"
	"meridian/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestResolveToggle(t *testing.T) {
	like := &models.Reaction{Kind: models.ReactionLike}
	dislike := &models.Reaction{Kind: models.ReactionDislike}

	tests := []struct {
		name      string
		current   *models.Reaction
		requested models.ReactionKind
		want      string
	}{
		{"no reaction, like", nil, models.ReactionLike, ToggleCreated},
		{"no reaction, dislike", nil, models.ReactionDislike, ToggleCreated},
		{"like pressed again", like, models.ReactionLike, ToggleRemoved},
		{"dislike pressed again", dislike, models.ReactionDislike, ToggleRemoved},
		{"like switched to dislike", like, models.ReactionDislike, ToggleChanged},
		{"dislike switched to like", dislike, models.ReactionLike, ToggleChanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveToggle(tt.current, tt.requested))
		})
	}
}

func TestToggle_InvalidKindTouchesNothing(t *testing.T) {
	reactionRepo := noopReactionRepo()
	reactionRepo.findFn = func(_ context.Context, _, _ uint) (*models.Reaction, error) {
		t.Fatal("store must not be read for an invalid kind")
		return nil, nil
	}
	postRepo := noopPostRepo()
	postRepo.existsFn = func(_ context.Context, _ uint) (bool, error) {
		t.Fatal("store must not be read for an invalid kind")
		return false, nil
	}
	svc := NewReactionService(reactionRepo, postRepo)

	_, err := svc.Toggle(context.Background(), 1, 1, "angry")
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInvalidReaction, appErr.Code)
}

func TestToggle_PostNotFound(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
	svc := NewReactionService(noopReactionRepo(), postRepo)

	_, err := svc.Toggle(context.Background(), 1, 42, "like")
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestToggle_Created(t *testing.T) {
	svc := NewReactionService(noopReactionRepo(), noopPostRepo())

	result, err := svc.Toggle(context.Background(), 1, 1, "like")
	require.NoError(t, err)
	assert.Equal(t, ToggleCreated, result.Status)
	require.NotNil(t, result.Reaction)
	assert.Equal(t, models.ReactionLike, result.Reaction.Kind)
}

func TestToggle_Removed(t *testing.T) {
	reactionRepo := noopReactionRepo()
	reactionRepo.findFn = func(_ context.Context, _, _ uint) (*models.Reaction, error) {
		return &models.Reaction{UserID: 1, PostID: 1, Kind: models.ReactionLike}, nil
	}
	svc := NewReactionService(reactionRepo, noopPostRepo())

	result, err := svc.Toggle(context.Background(), 1, 1, "like")
	require.NoError(t, err)
	assert.Equal(t, ToggleRemoved, result.Status)
	assert.Nil(t, result.Reaction)
}

func TestToggle_Changed(t *testing.T) {
	reactionRepo := noopReactionRepo()
	reactionRepo.findFn = func(_ context.Context, _, _ uint) (*models.Reaction, error) {
		return &models.Reaction{UserID: 1, PostID: 1, Kind: models.ReactionLike}, nil
	}
	svc := NewReactionService(reactionRepo, noopPostRepo())

	result, err := svc.Toggle(context.Background(), 1, 1, "dislike")
	require.NoError(t, err)
	assert.Equal(t, ToggleChanged, result.Status)
	require.NotNil(t, result.Reaction)
	assert.Equal(t, models.ReactionDislike, result.Reaction.Kind)
}

func TestToggle_RetriesAfterCreateConflict(t *testing.T) {
	// First attempt: Find sees nothing, Create loses the race. Second
	// attempt: Find sees the winner's row and the toggle resolves against
	// fresh state.
	reactionRepo := noopReactionRepo()
	finds := 0
	reactionRepo.findFn = func(_ context.Context, _, _ uint) (*models.Reaction, error) {
		finds++
		if finds == 1 {
			return nil, nil
		}
		return &models.Reaction{UserID: 1, PostID: 1, Kind: models.ReactionLike}, nil
	}
	reactionRepo.createFn = func(_ context.Context, _ *models.Reaction) error {
		return models.NewConflictError(errors.New("duplicate key"))
	}
	svc := NewReactionService(reactionRepo, noopPostRepo())

	result, err := svc.Toggle(context.Background(), 1, 1, "like")
	require.NoError(t, err)
	assert.Equal(t, 2, finds)
	assert.Equal(t, ToggleRemoved, result.Status)
}

func TestToggle_ExhaustedRetriesIsInternal(t *testing.T) {
	reactionRepo := noopReactionRepo()
	reactionRepo.createFn = func(_ context.Context, _ *models.Reaction) error {
		return models.NewConflictError(errors.New("duplicate key"))
	}
	svc := NewReactionService(reactionRepo, noopPostRepo())

	_, err := svc.Toggle(context.Background(), 1, 1, "like")
	require.Error(t, err)

	// Conflicts are internal; callers never see the CONFLICT code.
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInternal, appErr.Code)
}

func TestStats_PostNotFound(t *testing.T) {
	postRepo := noopPostRepo()
	postRepo.existsFn = func(_ context.Context, _ uint) (bool, error) { return false, nil }
	svc := NewReactionService(noopReactionRepo(), postRepo)

	_, err := svc.Stats(context.Background(), 42)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func toggleTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
	))
	return db
}

// TestToggle_RoundTripAgainstDatabase runs the full like -> dislike -> dislike
// cycle against a real schema.
func TestToggle_RoundTripAgainstDatabase(t *testing.T) {
	db := toggleTestDB(t)
	user := &models.User{Username: "ada", Email: "ada@example.com"}
	require.NoError(t, db.Create(user).Error)
	post := &models.Post{Text: "hello", UserID: user.ID}
	require.NoError(t, db.Create(post).Error)

	svc := NewReactionService(
		repository.NewReactionRepository(db),
		repository.NewPostRepository(db),
	)
	ctx := context.Background()

	result, err := svc.Toggle(ctx, user.ID, post.ID, "like")
	require.NoError(t, err)
	assert.Equal(t, ToggleCreated, result.Status)

	result, err = svc.Toggle(ctx, user.ID, post.ID, "dislike")
	require.NoError(t, err)
	assert.Equal(t, ToggleChanged, result.Status)
	assert.Equal(t, models.ReactionDislike, result.Reaction.Kind)

	result, err = svc.Toggle(ctx, user.ID, post.ID, "dislike")
	require.NoError(t, err)
	assert.Equal(t, ToggleRemoved, result.Status)
	assert.Nil(t, result.Reaction)

	var count int64
	require.NoError(t, db.Model(&models.Reaction{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

// TestToggle_AtMostOneRowInvariant hammers the toggle with random kinds and
// checks that the pair never accumulates more than one row.
func TestToggle_AtMostOneRowInvariant(t *testing.T) {
	db := toggleTestDB(t)
	user := &models.User{Username: "ada", Email: "ada@example.com"}
	require.NoError(t, db.Create(user).Error)
	post := &models.Post{Text: "hello", UserID: user.ID}
	require.NoError(t, db.Create(post).Error)

	svc := NewReactionService(
		repository.NewReactionRepository(db),
		repository.NewPostRepository(db),
	)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(1))
	kinds := []string{"like", "dislike"}

	for i := 0; i < 100; i++ {
		_, err := svc.Toggle(ctx, user.ID, post.ID, kinds[rng.Intn(2)])
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.Model(&models.Reaction{}).
			Where("user_id = ? AND post_id = ?", user.ID, post.ID).
			Count(&count).Error)
		require.LessOrEqual(t, count, int64(1))
	}
}

func TestStats_CountsFromDatabase(t *testing.T) {
	db := toggleTestDB(t)
	author := &models.User{Username: "author", Email: "author@example.com"}
	require.NoError(t, db.Create(author).Error)
	post := &models.Post{Text: "hello", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)

	svc := NewReactionService(
		repository.NewReactionRepository(db),
		repository.NewPostRepository(db),
	)
	ctx := context.Background()

	for i, kind := range []string{"like", "like", "dislike"} {
		u := &models.User{Username: string(rune('a' + i)), Email: string(rune('a'+i)) + "@example.com"}
		require.NoError(t, db.Create(u).Error)
		_, err := svc.Toggle(ctx, u.ID, post.ID, kind)
		require.NoError(t, err)
	}
	require.NoError(t, db.Create(&models.Comment{Text: "one", UserID: author.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Text: "two", UserID: author.ID, PostID: post.ID}).Error)

	stats, err := svc.Stats(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.LikesCount)
	assert.Equal(t, int64(1), stats.DislikesCount)
	assert.Equal(t, int64(2), stats.CommentsCount)
	assert.Equal(t, int64(3), stats.TotalReactions)
}

func TestStats_FreshPostIsAllZeros(t *testing.T) {
	db := toggleTestDB(t)
	author := &models.User{Username: "author", Email: "author@example.com"}
	require.NoError(t, db.Create(author).Error)
	post := &models.Post{Text: "hello", UserID: author.ID}
	require.NoError(t, db.Create(post).Error)

	svc := NewReactionService(
		repository.NewReactionRepository(db),
		repository.NewPostRepository(db),
	)

	stats, err := svc.Stats(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, &models.PostStats{}, stats)
}
