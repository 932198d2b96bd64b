package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nekogravitycat/venue-booking-backend/internal/auth"
	"github.com/nekogravitycat/venue-booking-backend/internal/pkg/logger"
)

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, username, password, confirmPassword string) (*User, error)
	Login(ctx context.Context, username, password string) (*User, error)
	// IsActiveUser reports whether the account exists and may sign in.
	IsActiveUser(ctx context.Context, id string) (bool, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
	log    *logger.Logger
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher, log *logger.Logger) Service {
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		repo:   repo,
		hasher: hasher,
		log:    log,
	}
}

func (s *service) Register(ctx context.Context, username, password, confirmPassword string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if password == "" || confirmPassword == "" {
		return nil, ErrPasswordRequired
	}

	// Check if username is already used.
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing username: %w", err)
	}

	if password != confirmPassword {
		return nil, ErrPasswordMismatch
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
	}

	// A concurrent registration can still win the race; the repository
	// reports that as ErrUsernameTaken through the unique constraint.
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by username: %w", err)
	}

	// Inactive accounts are indistinguishable from wrong credentials.
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Update last_login_at (best effort; do not fail login if update fails).
	now := time.Now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, now); err != nil {
		s.log.Warn("failed to update last login", "user_id", u.ID, "error", err)
	} else {
		u.LastLoginAt = &now
	}

	return u, nil
}

func (s *service) IsActiveUser(ctx context.Context, id string) (bool, error) {
	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return u.IsActive, nil
}
