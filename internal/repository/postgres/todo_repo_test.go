package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/ekomarov/tasktrack/internal/errs"
	"github.com/ekomarov/tasktrack/internal/model"
)

var todoCols = []string{
	"id", "user_id", "title", "description", "priority", "category",
	"completed", "completed_at", "due_date", "created_at", "updated_at",
}

func todoRow(id uuid.UUID, userID int64, title string, completed bool) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows(todoCols).
		AddRow(id, userID, title, (*string)(nil), model.PriorityMedium, (*string)(nil),
			completed, (*time.Time)(nil), (*string)(nil), now, now)
}

func TestTodoRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	ctx := context.Background()

	id := uuid.Must(uuid.NewV4())
	todo := &model.Todo{ID: id, UserID: 1, Title: "Buy milk", Priority: model.PriorityMedium}

	mock.ExpectExec(`INSERT INTO todos \(id, user_id, title, description, priority, category, completed, completed_at, due_date, created_at, updated_at\)`).
		WithArgs(id, int64(1), "Buy milk", (*string)(nil), model.PriorityMedium, (*string)(nil),
			false, (*time.Time)(nil), (*string)(nil), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(ctx, todo))
	require.False(t, todo.CreatedAt.IsZero())
	require.Equal(t, todo.CreatedAt, todo.UpdatedAt)
}

func TestTodoRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)

	id := uuid.Must(uuid.NewV4())
	mock.ExpectQuery(`SELECT .+ FROM todos WHERE id=\$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	_, err := r.GetByID(context.Background(), id)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTodoRepo_ListByUser_EmptyIsNotError(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM todos WHERE user_id=\$1 ORDER BY created_at DESC`).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(todoCols))
	out, err := r.ListByUser(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Empty(t, out)
}

func TestTodoRepo_Update_BuildsSortedSetClause(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)

	id := uuid.Must(uuid.NewV4())
	completedAt := time.Now().UTC()
	fields := map[string]any{
		"completed":    true,
		"completed_at": &completedAt,
		"title":        "Buy oat milk",
	}

	// columns are applied alphabetically: completed, completed_at, title
	mock.ExpectQuery(`UPDATE todos SET completed=\$1, completed_at=\$2, title=\$3, updated_at=\$4 WHERE id=\$5 RETURNING`).
		WithArgs(true, &completedAt, "Buy oat milk", pgxmock.AnyArg(), id).
		WillReturnRows(todoRow(id, 1, "Buy oat milk", true))
	got, err := r.Update(context.Background(), id, fields)
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", got.Title)
}

func TestTodoRepo_Update_EmptySubsetReturnsCurrentRow(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)

	id := uuid.Must(uuid.NewV4())
	mock.ExpectQuery(`SELECT .+ FROM todos WHERE id=\$1`).
		WithArgs(id).
		WillReturnRows(todoRow(id, 1, "unchanged", false))
	got, err := r.Update(context.Background(), id, map[string]any{})
	require.NoError(t, err)
	require.Equal(t, "unchanged", got.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepo_Update_RejectsUnknownField(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)

	_, err := r.Update(context.Background(), uuid.Must(uuid.NewV4()), map[string]any{"user_id": int64(9)})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTodoRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	ctx := context.Background()

	id := uuid.Must(uuid.NewV4())
	mock.ExpectExec(`DELETE FROM todos WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	ok, err := r.Delete(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)

	mock.ExpectExec(`DELETE FROM todos WHERE id=\$1`).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	ok, err = r.Delete(ctx, id)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTodoRepo_Stats(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(\*\) FILTER \(WHERE completed\) FROM todos WHERE user_id=\$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count", "count"}).AddRow(3, 1))
	s, err := r.Stats(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, model.TodoStats{Total: 3, Completed: 1, CompletionRate: 33}, s)

	mock.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(\*\) FILTER \(WHERE completed\) FROM todos WHERE user_id=\$1`).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"count", "count"}).AddRow(0, 0))
	s, err = r.Stats(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, model.TodoStats{}, s)
}
