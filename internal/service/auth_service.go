package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"letter_system/internal/model"
	"letter_system/internal/repository"
	"letter_system/internal/utils"
)

var (
	// ErrInvalidCredentials is returned for an unknown username and for a
	// wrong password alike, so callers cannot tell the two cases apart.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidRole rejects registrations outside the two known roles.
	ErrInvalidRole = errors.New("role must be either admin or user")
)

// AuthService provides authentication related services
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

// Register creates a new user account. The login screen routes on the
// stored role, so anything outside admin/user is rejected up front.
func (s *authService) Register(ctx context.Context, username, password, role string) (*model.User, error) {
	if !model.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	// A duplicate username trips the unique constraint and surfaces as a
	// generic store error.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns the stored identity
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding user by username: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials // Password mismatch
	}

	return user, nil
}
