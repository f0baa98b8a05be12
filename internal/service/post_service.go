package service

import (
	"context"
	"errors"
	"strings"

	"meridian/internal/cache"
	"meridian/internal/geo"
	"meridian/internal/models"
	"meridian/internal/repository"

	"gorm.io/gorm"
)

const (
	maxPostTextLen = 2000
	maxPostImages  = 10
)

// Geocoder resolves a location name to coordinates. Lookups are best-effort;
// a nil Location with a nil error means "unknown".
type Geocoder interface {
	Resolve(ctx context.Context, locationName string) (*geo.Location, error)
}

type PostService struct {
	postRepo repository.PostRepository
	geocoder Geocoder
}

type CreatePostInput struct {
	UserID       uint
	Text         string
	ImageURL     string
	ImageURLs    []string
	LocationName string
}

type ListPostsInput struct {
	Limit         int
	Offset        int
	CurrentUserID uint
}

type UpdatePostInput struct {
	UserID       uint
	PostID       uint
	Text         string
	ImageURL     string
	LocationName *string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

// NewPostService wires a PostService. geocoder may be nil, in which case
// posts are stored without coordinates.
func NewPostService(postRepo repository.PostRepository, geocoder Geocoder) *PostService {
	return &PostService{
		postRepo: postRepo,
		geocoder: geocoder,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(text) > maxPostTextLen {
		return nil, models.NewValidationError("Text too long (max 2000 characters)")
	}
	if len(in.ImageURLs) > maxPostImages {
		return nil, models.NewValidationError("Too many images (max 10)")
	}

	post := &models.Post{
		Text:         text,
		ImageURL:     in.ImageURL,
		UserID:       in.UserID,
		LocationName: strings.TrimSpace(in.LocationName),
	}
	for i, u := range in.ImageURLs {
		post.Images = append(post.Images, models.PostImage{ImageURL: u, Order: i})
	}
	s.resolveCoordinates(ctx, post)

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.GetPost(ctx, post.ID, in.UserID)
}

// resolveCoordinates fills in latitude and longitude from the post's location
// name. Lookups never fail the operation: on any miss or error the post is
// stored without coordinates.
func (s *PostService) resolveCoordinates(ctx context.Context, post *models.Post) {
	post.Latitude = nil
	post.Longitude = nil
	if post.LocationName == "" || s.geocoder == nil {
		return
	}
	loc, err := s.geocoder.Resolve(ctx, post.LocationName)
	if err != nil || loc == nil {
		return
	}
	post.Latitude = &loc.Latitude
	post.Longitude = &loc.Longitude
}

func (s *PostService) GetPost(ctx context.Context, id uint, currentUserID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]*models.Post, error) {
	var posts []*models.Post
	var err error

	// The anonymous first page is by far the hottest read; it shares one
	// short-lived cache entry. Everything else goes to the database.
	if in.CurrentUserID == 0 && in.Offset == 0 && in.Limit <= 20 {
		err = cache.Aside(ctx, cache.PostsListKey(), &posts, cache.ListTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.List(ctx, in.Limit, in.Offset, 0)
			return fetchErr
		})
	} else {
		posts, err = s.postRepo.List(ctx, in.Limit, in.Offset, in.CurrentUserID)
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	posts, err := s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if in.Text != "" {
		text := strings.TrimSpace(in.Text)
		if len(text) > maxPostTextLen {
			return nil, models.NewValidationError("Text too long (max 2000 characters)")
		}
		post.Text = text
	}
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}
	if in.LocationName != nil && *in.LocationName != post.LocationName {
		post.LocationName = strings.TrimSpace(*in.LocationName)
		s.resolveCoordinates(ctx, post)
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetPost(ctx, in.PostID, in.UserID)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.GetPost(ctx, in.PostID, in.UserID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	if err := s.postRepo.Delete(ctx, in.PostID); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
