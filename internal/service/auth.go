// Package service contains application services for authentication and todos.
package service

import (
	"context"
	"errors"
	"fmt"

	pkgcrypto "github.com/ekomarov/tasktrack/internal/crypto"
	"github.com/ekomarov/tasktrack/internal/errs"
	"github.com/ekomarov/tasktrack/internal/model"
	"github.com/ekomarov/tasktrack/internal/repository"
)

// AuthService defines account registration and authentication.
type AuthService interface {
	// Register validates credential formats and creates a new account.
	Register(ctx context.Context, username, password string) (*model.User, error)
	// Login authenticates a user by username and password.
	Login(ctx context.Context, username, password string) (*model.User, error)
	// GetUser loads an account by ID (used for session checks).
	GetUser(ctx context.Context, id int64) (*model.User, error)
}

type AuthServiceImpl struct {
	users repository.UserRepository
}

// NewAuthService constructs AuthService.
func NewAuthService(users repository.UserRepository) *AuthServiceImpl {
	return &AuthServiceImpl{users: users}
}

// Register creates a new user with a bcrypt password hash.
// Uniqueness is pre-checked for a friendly error, but the insert still
// relies on the database constraint, so a racing duplicate is rejected
// there as well.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (*model.User, error) {
	if err := pkgcrypto.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := pkgcrypto.ValidatePassword(password); err != nil {
		return nil, err
	}

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, errs.ErrAlreadyExists
	case !errors.Is(err, errs.ErrNotFound):
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := pkgcrypto.HashPassword([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login verifies credentials. Any mismatch reads as unauthorized so
// username existence is not leaked.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.PasswordHash) {
		return nil, errs.ErrUnauthorized
	}
	return u, nil
}

// GetUser loads an account by ID.
func (s *AuthServiceImpl) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
