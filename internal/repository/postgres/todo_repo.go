package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/ekomarov/tasktrack/internal/errs"
	"github.com/ekomarov/tasktrack/internal/model"
	"github.com/ekomarov/tasktrack/internal/repository"
)

// TodoRepo implements TodoRepository using PostgreSQL.
type TodoRepo struct{ db *DB }

// NewTodoRepo constructs a todo repository.
func NewTodoRepo(db *DB) *TodoRepo { return &TodoRepo{db: db} }

const todoColumns = `id, user_id, title, description, priority, category, completed, completed_at, due_date, created_at, updated_at`

func scanTodo(row pgx.Row) (*model.Todo, error) {
	var t model.Todo
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority, &t.Category,
		&t.Completed, &t.CompletedAt, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts a new todo row. Timestamps are set here so that
// created_at equals updated_at at creation on every backend.
func (r *TodoRepo) Create(ctx context.Context, t *model.Todo) error {
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	const q = `
INSERT INTO todos (id, user_id, title, description, priority, category, completed, completed_at, due_date, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Pool.Exec(ctx, q,
		t.ID, t.UserID, t.Title, t.Description, t.Priority, t.Category,
		t.Completed, t.CompletedAt, t.DueDate, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

// GetByID selects a single todo.
func (r *TodoRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Todo, error) {
	q := `SELECT ` + todoColumns + ` FROM todos WHERE id=$1`
	return scanTodo(r.db.Pool.QueryRow(ctx, q, id))
}

// ListByUser returns the user's todos, most recent first.
func (r *TodoRepo) ListByUser(ctx context.Context, userID int64) ([]model.Todo, error) {
	q := `SELECT ` + todoColumns + ` FROM todos WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Todo{}
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.Title, &t.Description, &t.Priority, &t.Category,
			&t.Completed, &t.CompletedAt, &t.DueDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update applies the given field subset in one statement and returns the
// post-update row. Columns are sorted so the generated SQL is stable.
// Every value is bound; field names are checked against the allow-set,
// never taken from client input verbatim.
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
	for i, name := range names {
		set = append(set, fmt.Sprintf("%s=$%d", name, i+1))
		args = append(args, fields[name])
	}
	set = append(set, fmt.Sprintf("updated_at=$%d", len(args)+1))
	args = append(args, time.Now().UTC())
	args = append(args, id)

	q := fmt.Sprintf(`UPDATE todos SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(set, ", "), len(args), todoColumns)
	return scanTodo(r.db.Pool.QueryRow(ctx, q, args...))
}

// Delete removes a todo, reporting whether a row existed.
func (r *TodoRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM todos WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Stats aggregates completion totals for one user.
func (r *TodoRepo) Stats(ctx context.Context, userID int64) (model.TodoStats, error) {
	const q = `
SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
FROM todos WHERE user_id=$1`
	var total, completed int
	if err := r.db.Pool.QueryRow(ctx, q, userID).Scan(&total, &completed); err != nil {
		return model.TodoStats{}, err
	}
	return model.NewTodoStats(total, completed), nil
}
