package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mowistore/backend/internal/domain/models"
	"github.com/mowistore/backend/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

// UserService wraps user CRUD so password hashing never leaks into handlers.
type UserService interface {
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User, password string) (*models.User, error)
	// Update rewrites the mutable fields; a non-empty password replaces the hash.
	Update(ctx context.Context, user *models.User, password string) error
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	log      *slog.Logger
	userRepo storage.UserStorage
}

func NewUserService(log *slog.Logger, userRepo storage.UserStorage) UserService {
	return &userService{log: log, userRepo: userRepo}
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListUsers(ctx)
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

func (s *userService) Create(ctx context.Context, user *models.User, password string) (*models.User, error) {
	const op = "service.UserService.Create"
	user.Email = strings.ToLower(user.Email)

	if _, err := s.userRepo.GetUserByEmail(ctx, user.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: failed to check email: %w", op, err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}
	user.PassHash = passHash

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		s.log.Error("failed to create user", slog.String("op", op), slog.Any("error", err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

func (s *userService) Update(ctx context.Context, user *models.User, password string) error {
	const op = "service.UserService.Update"
	user.Email = strings.ToLower(user.Email)

	current, err := s.userRepo.GetUserByID(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user.PassHash = current.PassHash
	if password != "" {
		passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("%s: failed to hash password: %w", op, err)
		}
		user.PassHash = passHash
	}

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		s.log.Error("failed to update user", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.userRepo.DeleteUser(ctx, id)
}
