package service

import (
	"context"

	"meridian/internal/geo"
	"meridian/internal/models"
)

// postRepoStub is a func-field stub for repository.PostRepository.
type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listFn        func(context.Context, int, int, uint) ([]*models.Post, error)
	existsFn      func(context.Context, uint) (bool, error)
	updateFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset, currentUserID)
}
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, post *models.Post) error {
			post.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		listFn:        func(_ context.Context, _, _ int, _ uint) ([]*models.Post, error) { return nil, nil },
		existsFn:      func(_ context.Context, _ uint) (bool, error) { return true, nil },
		updateFn:      func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
	}
}

// reactionRepoStub is a func-field stub for repository.ReactionRepository.
type reactionRepoStub struct {
	findFn         func(context.Context, uint, uint) (*models.Reaction, error)
	createFn       func(context.Context, *models.Reaction) error
	updateKindFn   func(context.Context, uint, uint, models.ReactionKind, models.ReactionKind) (bool, error)
	deleteIfKindFn func(context.Context, uint, uint, models.ReactionKind) (bool, error)
	statsFn        func(context.Context, uint) (*models.PostStats, error)
}

func (s *reactionRepoStub) Find(ctx context.Context, userID, postID uint) (*models.Reaction, error) {
	return s.findFn(ctx, userID, postID)
}
func (s *reactionRepoStub) Create(ctx context.Context, reaction *models.Reaction) error {
	return s.createFn(ctx, reaction)
}
func (s *reactionRepoStub) UpdateKind(ctx context.Context, userID, postID uint, from, to models.ReactionKind) (bool, error) {
	return s.updateKindFn(ctx, userID, postID, from, to)
}
func (s *reactionRepoStub) DeleteIfKind(ctx context.Context, userID, postID uint, kind models.ReactionKind) (bool, error) {
	return s.deleteIfKindFn(ctx, userID, postID, kind)
}
func (s *reactionRepoStub) StatsForPost(ctx context.Context, postID uint) (*models.PostStats, error) {
	return s.statsFn(ctx, postID)
}

func noopReactionRepo() *reactionRepoStub {
	return &reactionRepoStub{
		findFn:   func(_ context.Context, _, _ uint) (*models.Reaction, error) { return nil, nil },
		createFn: func(_ context.Context, _ *models.Reaction) error { return nil },
		updateKindFn: func(_ context.Context, _, _ uint, _, _ models.ReactionKind) (bool, error) {
			return true, nil
		},
		deleteIfKindFn: func(_ context.Context, _, _ uint, _ models.ReactionKind) (bool, error) {
			return true, nil
		},
		statsFn: func(_ context.Context, _ uint) (*models.PostStats, error) {
			return &models.PostStats{}, nil
		},
	}
}

// commentRepoStub is a func-field stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, comment *models.Comment) error {
			comment.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id}, nil
		},
		listByPostFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
	}
}

// userRepoStub is a func-field stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByUsernameFn func(context.Context, string) (*models.User, error)
	listFn          func(context.Context, int, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id}, nil
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{Username: username}, nil
		},
		listFn: func(_ context.Context, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

// geocoderStub is a func-field stub for the Geocoder interface.
type geocoderStub struct {
	resolveFn func(context.Context, string) (*geo.Location, error)
}

func (s *geocoderStub) Resolve(ctx context.Context, locationName string) (*geo.Location, error) {
	return s.resolveFn(ctx, locationName)
}
