package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskassistant/internal/models"
	"taskassistant/internal/repositories"
)

type UserService interface {
	Create(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type userService struct {
	repo repositories.UserRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewUserService(repo repositories.UserRepository, log *zap.Logger) UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &userService{repo: repo, log: log.Named("users"), now: time.Now}
}

// Create registers a user. The uniqueness check is best effort: two
// concurrent requests for the same name can both succeed.
func (s *userService) Create(ctx context.Context, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.log.Error("[user][create][err]", zap.String("username", username), zap.Error(err))
		return nil, err
	}
	s.log.Info("[user][create][ok]", zap.String("user_id", user.ID))
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}
