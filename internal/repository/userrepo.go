// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/ekomarov/tasktrack/internal/model"
)

// UserRepository provides account storage.
type UserRepository interface {
	// Create inserts a new user and fills in ID/CreatedAt.
	// Returns errs.ErrAlreadyExists on a username uniqueness violation.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id int64) (*model.User, error)
	// GetByUsername loads a user by username (case-sensitive).
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
