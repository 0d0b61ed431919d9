package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ekomarov/tasktrack/internal/errs"
	"github.com/ekomarov/tasktrack/internal/model"
)

// UserRepo implements UserRepository on the embedded database.
type UserRepo struct{ db *sql.DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row. The AUTOINCREMENT id and created_at
// are written back into u.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	created := time.Now().UTC()
	const q = `INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, u.Username, u.PasswordHash, fmtTime(created))
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrAlreadyExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	u.CreatedAt = created
	return nil
}

func (r *UserRepo) scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	var created string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	u.CreatedAt = t
	return &u, nil
}

// GetByID selects a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `SELECT id, username, password_hash, created_at FROM users WHERE id=?`
	return r.scanUser(r.db.QueryRowContext(ctx, q, id))
}

// GetByUsername selects a user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `SELECT id, username, password_hash, created_at FROM users WHERE username=?`
	return r.scanUser(r.db.QueryRowContext(ctx, q, username))
}
