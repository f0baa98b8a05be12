package repository

import (
	"context"
	"errors"

	"meridian/internal/models"

	"gorm.io/gorm"
)

// ReactionRepository defines persistence operations for reactions.
//
// The write methods are deliberately narrow compare-and-swap primitives: each
// one either applies the intended transition against the state it was decided
// on, or reports that the state moved underneath it so the caller can re-read
// and retry. Create relies on the (user_id, post_id) unique index and
// surfaces a duplicate row as a CONFLICT error; DeleteIfKind and UpdateKind
// report false when no row matched the expected current kind.
type ReactionRepository interface {
	Find(ctx context.Context, userID, postID uint) (*models.Reaction, error)
	Create(ctx context.Context, reaction *models.Reaction) error
	UpdateKind(ctx context.Context, userID, postID uint, from, to models.ReactionKind) (bool, error)
	DeleteIfKind(ctx context.Context, userID, postID uint, kind models.ReactionKind) (bool, error)
	StatsForPost(ctx context.Context, postID uint) (*models.PostStats, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository returns a new ReactionRepository implementation.
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Find returns the user's reaction on a post, or (nil, nil) when there is
// none.
func (r *reactionRepository) Find(ctx context.Context, userID, postID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

// Create inserts a new reaction row. When the user already holds a reaction
// on the post the unique index rejects the insert and the error comes back
// as a CONFLICT AppError for the caller to retry on.
func (r *reactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	err := r.db.WithContext(ctx).Create(reaction).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.NewConflictError(err)
	}
	return err
}

// UpdateKind flips the reaction from one kind to the other. The WHERE clause
// pins the expected current kind; a zero row count means a concurrent toggle
// got there first.
func (r *reactionRepository) UpdateKind(ctx context.Context, userID, postID uint, from, to models.ReactionKind) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Where("user_id = ? AND post_id = ? AND kind = ?", userID, postID, from).
		Update("kind", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// DeleteIfKind hard-deletes the reaction row if it still holds the expected
// kind. A zero row count means a concurrent toggle got there first.
func (r *reactionRepository) DeleteIfKind(ctx context.Context, userID, postID uint, kind models.ReactionKind) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ? AND kind = ?", userID, postID, kind).
		Delete(&models.Reaction{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// StatsForPost counts likes, dislikes and comments inside a single
// transaction so the returned snapshot is internally consistent.
func (r *reactionRepository) StatsForPost(ctx context.Context, postID uint) (*models.PostStats, error) {
	var stats models.PostStats
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Reaction{}).
			Where("post_id = ? AND kind = ?", postID, models.ReactionLike).
			Count(&stats.LikesCount).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Reaction{}).
			Where("post_id = ? AND kind = ?", postID, models.ReactionDislike).
			Count(&stats.DislikesCount).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Comment{}).
			Where("post_id = ?", postID).
			Count(&stats.CommentsCount).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	stats.TotalReactions = stats.LikesCount + stats.DislikesCount
	return &stats, nil
}
