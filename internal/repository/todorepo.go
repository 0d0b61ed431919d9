package repository

import (
	"context"

	"github.com/ekomarov/tasktrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UpdatableTodoFields is the allow-set of column names Update accepts.
// id, user_id and created_at are deliberately absent: they are immutable.
var UpdatableTodoFields = map[string]struct{}{
	"title":        {},
	"description":  {},
	"priority":     {},
	"category":     {},
	"completed":    {},
	"completed_at": {},
	"due_date":     {},
}

// TodoRepository provides storage for todo records.
type TodoRepository interface {
	// Create inserts a new todo and fills in CreatedAt/UpdatedAt.
	Create(ctx context.Context, t *model.Todo) error

	// GetByID loads a single todo by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error)

	// ListByUser returns the user's todos ordered by created_at descending.
	// A user with no todos yields an empty slice, not an error.
	ListByUser(ctx context.Context, userID int64) ([]model.Todo, error)

	// Update applies an arbitrary subset of UpdatableTodoFields in one
	// atomic statement, refreshing updated_at, and returns the
	// post-update record. An empty subset is a no-op that returns the
	// current record unchanged. A key outside the allow-set is an error.
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Todo, error)

	// Delete removes a todo. Reports whether a row was actually removed;
	// a missing id is (false, nil), not an error.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// Stats returns completion totals for one user.
	Stats(ctx context.Context, userID int64) (model.TodoStats, error)
}
