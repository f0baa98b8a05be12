package service

import (
	"context"
	"strings"

	"meridian/internal/models"
	"meridian/internal/repository"
)

// UserService serves public profile reads. Accounts themselves are managed by
// the external identity service.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("Username is required")
	}
	return s.userRepo.GetByUsername(ctx, username)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
