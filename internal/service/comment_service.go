package service

import (
	"context"
	"strings"

	"meridian/internal/models"
	"meridian/internal/repository"
)

const maxCommentTextLen = 1000

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

type CreateCommentInput struct {
	UserID uint
	PostID uint
	Text   string
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	exists, err := s.postRepo.Exists(ctx, in.PostID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(text) > maxCommentTextLen {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}

	comment := &models.Comment{
		Text:   text,
		UserID: in.UserID,
		PostID: in.PostID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]*models.Comment, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", postID)
	}
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}
