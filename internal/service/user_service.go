package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/podryad/podryad/internal/auth"
	"github.com/podryad/podryad/internal/domain"
	"github.com/podryad/podryad/internal/repository"
)

// UserService handles registration, login and profile management.
type UserService struct {
	userRepo *repository.UserRepository
	taskRepo *repository.TaskRepository
	tokens   *auth.TokenManager
}

// NewUserService creates a new UserService.
func NewUserService(
	userRepo *repository.UserRepository,
	taskRepo *repository.TaskRepository,
	tokens *auth.TokenManager,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		taskRepo: taskRepo,
		tokens:   tokens,
	}
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Register creates an account and returns the user with a fresh token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	if in.Username == "" {
		return nil, "", fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if in.Email == "" {
		return nil, "", fmt.Errorf("%w: email is required", domain.ErrValidation)
	}
	if len(in.Password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrValidation)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
	}
	user, err = s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	slog.Info("user registered",
		"user_id", user.ID,
		"username", user.Username,
	)

	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	slog.Info("user logged in", "user_id", user.ID)

	return user, token, nil
}

// GetProfile retrieves a user together with their public counters.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, *repository.UserStatsResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	stats, err := s.taskRepo.GetUserStats(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return user, stats, nil
}

// UpdateProfile saves the actor's own profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, actor domain.Actor, firstName, lastName, phone, bio string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Phone = phone
	user.Bio = bio

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("profile updated", "user_id", user.ID)

	return user, nil
}
