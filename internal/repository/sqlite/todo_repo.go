package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/ekomarov/tasktrack/internal/errs"
	"github.com/ekomarov/tasktrack/internal/model"
	"github.com/ekomarov/tasktrack/internal/repository"
)

// TodoRepo implements TodoRepository on the embedded database.
type TodoRepo struct{ db *sql.DB }

// NewTodoRepo constructs a todo repository.
func NewTodoRepo(db *sql.DB) *TodoRepo { return &TodoRepo{db: db} }

const todoColumns = `id, user_id, title, description, priority, category, completed, completed_at, due_date, created_at, updated_at`

type rowScanner interface{ Scan(dest ...any) error }

func scanTodo(row rowScanner) (*model.Todo, error) {
	var (
		t           model.Todo
		id          string
		completedAt sql.NullString
		created     string
		updated     string
	)
	err := row.Scan(
		&id, &t.UserID, &t.Title, &t.Description, &t.Priority, &t.Category,
		&t.Completed, &completedAt, &t.DueDate, &created, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if t.ID, err = uuid.FromString(id); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		ts, err := parseTime(completedAt.String)
		if err != nil {
			return nil, err
		}
		t.CompletedAt = &ts
	}
	return &t, nil
}

// bindValue converts repository-level values to sqlite storage types.
func bindValue(v any) any {
	switch x := v.(type) {
	case *time.Time:
		if x == nil {
			return nil
		}
		return fmtTime(*x)
	case time.Time:
		return fmtTime(x)
	case model.Priority:
		return string(x)
	default:
		return v
	}
}

// Create inserts a new todo row. Timestamps are set here so that
// created_at equals updated_at at creation on every backend.
func (r *TodoRepo) Create(ctx context.Context, t *model.Todo) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	var completedAt any
	if t.CompletedAt != nil {
		completedAt = fmtTime(*t.CompletedAt)
	}
	const q = `
INSERT INTO todos (id, user_id, title, description, priority, category, completed, completed_at, due_date, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		t.ID.String(), t.UserID, t.Title, t.Description, string(t.Priority), t.Category,
		t.Completed, completedAt, t.DueDate, fmtTime(t.CreatedAt), fmtTime(t.UpdatedAt),
	)
	return err
}

// GetByID selects a single todo.
func (r *TodoRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	q := `SELECT ` + todoColumns + ` FROM todos WHERE id=?`
	return scanTodo(r.db.QueryRowContext(ctx, q, id.String()))
}

// ListByUser returns the user's todos, most recent first.
func (r *TodoRepo) ListByUser(ctx context.Context, userID int64) ([]model.Todo, error) {
	q := `SELECT ` + todoColumns + ` FROM todos WHERE user_id=? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Update applies the given field subset in one statement, then re-reads
// the row. Columns are sorted so the generated SQL is stable; every
// value is bound, and field names are checked against the allow-set.
func (r *TodoRepo) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*model.Todo, error) {
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		if _, ok := repository.UpdatableTodoFields[name]; !ok {
			return nil, fmt.Errorf("update todo: field %q not updatable", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	set := make([]string, 0, len(names)+1)
	args := make([]any, 0, len(names)+2)
	for _, name := range names {
		set = append(set, name+"=?")
		args = append(args, bindValue(fields[name]))
	}
	set = append(set, "updated_at=?")
	args = append(args, fmtTime(time.Now().UTC()))
	args = append(args, id.String())

	q := `UPDATE todos SET ` + strings.Join(set, ", ") + ` WHERE id=?`
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if ra == 0 {
		return nil, errs.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a todo, reporting whether a row existed.
func (r *TodoRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM todos WHERE id=?`
	res, err := r.db.ExecContext(ctx, q, id.String())
	if err != nil {
		return false, err
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return ra > 0, nil
}

// Stats aggregates completion totals for one user.
func (r *TodoRepo) Stats(ctx context.Context, userID int64) (model.TodoStats, error) {
	const q = `
SELECT COUNT(*), COALESCE(SUM(completed), 0)
FROM todos WHERE user_id=?`
	var total, completed int
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&total, &completed); err != nil {
		return model.TodoStats{}, err
	}
	return model.NewTodoStats(total, completed), nil
}
