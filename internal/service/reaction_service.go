// Package service holds the application's business logic, between the HTTP
// handlers and the repositories.
package service

import (
	"context"
	"errors"
	"log/slog"

	"meridian/internal/cache"
	"meridian/internal/middleware"
	"meridian/internal/models"
	"meridian/internal/repository"
)

// Toggle outcomes. Exactly one of these describes every successful toggle.
const (
	ToggleCreated = "created"
	ToggleChanged = "changed"
	ToggleRemoved = "removed"
)

// maxToggleAttempts bounds the retry loop when concurrent toggles race on the
// same (user, post) pair. Each retry re-reads current state, so two attempts
// are normally enough; three gives headroom.
const maxToggleAttempts = 3

// ToggleResult is the outcome of a reaction toggle. Reaction is nil when the
// toggle removed the reaction.
type ToggleResult struct {
	Status   string           `json:"status"`
	Reaction *models.Reaction `json:"reaction"`
}

type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
	}
}

// resolveToggle decides the transition for a toggle request given the user's
// current reaction on the post. It is pure: persistence happens in Toggle.
//
//	no reaction        -> create the requested kind ("created")
//	same kind held     -> remove it ("removed")
//	other kind held    -> switch to the requested kind ("changed")
func resolveToggle(current *models.Reaction, requested models.ReactionKind) string {
	switch {
	case current == nil:
		return ToggleCreated
	case current.Kind == requested:
		return ToggleRemoved
	default:
		return ToggleChanged
	}
}

// Toggle applies one press of the like or dislike button for a user on a
// post. rawKind is validated before anything is read or written; an unknown
// kind never changes state.
//
// The write path is read-decide-write: read the current reaction, decide the
// transition, then apply it with a compare-and-swap style repository call.
// When a concurrent toggle wins the race (duplicate-key insert, or zero rows
// matched the expected state) the loop re-reads and retries. Conflicts are an
// internal mechanism; callers only ever see the final outcome or a generic
// internal error when retries are exhausted.
func (s *ReactionService) Toggle(ctx context.Context, userID, postID uint, rawKind string) (*ToggleResult, error) {
	kind, err := models.ParseReactionKind(rawKind)
	if err != nil {
		return nil, err
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}

	var lastConflict error
	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		result, err := s.toggleOnce(ctx, userID, postID, kind)
		if err == nil {
			middleware.ReactionToggles.WithLabelValues(result.Status).Inc()
			cache.InvalidatePost(ctx, postID)
			cache.InvalidatePostsList(ctx)
			return result, nil
		}
		if !models.IsConflict(err) {
			return nil, err
		}

		lastConflict = err
		middleware.ToggleConflictRetries.Inc()
		slog.DebugContext(ctx, "reaction toggle conflict, retrying",
			slog.Uint64("user_id", uint64(userID)),
			slog.Uint64("post_id", uint64(postID)),
			slog.Int("attempt", attempt),
		)
	}

	return nil, models.NewInternalError(lastConflict)
}

// errStateMoved signals that the row changed between read and write.
var errStateMoved = errors.New("reaction state moved")

func (s *ReactionService) toggleOnce(ctx context.Context, userID, postID uint, kind models.ReactionKind) (*ToggleResult, error) {
	current, err := s.reactionRepo.Find(ctx, userID, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	switch resolveToggle(current, kind) {
	case ToggleCreated:
		reaction := &models.Reaction{UserID: userID, PostID: postID, Kind: kind}
		if err := s.reactionRepo.Create(ctx, reaction); err != nil {
			if models.IsConflict(err) {
				return nil, err
			}
			return nil, models.NewInternalError(err)
		}
		return &ToggleResult{Status: ToggleCreated, Reaction: reaction}, nil

	case ToggleRemoved:
		removed, err := s.reactionRepo.DeleteIfKind(ctx, userID, postID, current.Kind)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if !removed {
			return nil, models.NewConflictError(errStateMoved)
		}
		return &ToggleResult{Status: ToggleRemoved, Reaction: nil}, nil

	default: // ToggleChanged
		changed, err := s.reactionRepo.UpdateKind(ctx, userID, postID, current.Kind, kind)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if !changed {
			return nil, models.NewConflictError(errStateMoved)
		}
		current.Kind = kind
		return &ToggleResult{Status: ToggleChanged, Reaction: current}, nil
	}
}

// Stats returns the engagement counts for a post as one consistent snapshot.
func (s *ReactionService) Stats(ctx context.Context, postID uint) (*models.PostStats, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}
	stats, err := s.reactionRepo.StatsForPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return stats, nil
}
