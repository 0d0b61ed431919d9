// Package storage selects and assembles the persistence backend.
// The choice is made once at startup: a configured PostgreSQL DSN means
// the networked pooled backend, otherwise the embedded file backend.
// Everything above this package is backend-agnostic.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekomarov/tasktrack/internal/config"
	"github.com/ekomarov/tasktrack/internal/migrate"
	"github.com/ekomarov/tasktrack/internal/repository"
	pgrepo "github.com/ekomarov/tasktrack/internal/repository/postgres"
	sqliterepo "github.com/ekomarov/tasktrack/internal/repository/sqlite"
)

// Store bundles the repositories of the selected backend.
type Store struct {
	Users repository.UserRepository
	Todos repository.TodoRepository

	closeFn func()
}

// Close releases the backend's resources.
func (s *Store) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// Open migrates the schema and constructs repositories for the backend
// selected by cfg. Migrations are idempotent, so calling this on every
// start (or racing starts against the same database) is safe.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Store, error) {
	if cfg.UsePostgres() {
		if err := migrate.Postgres(ctx, cfg.DatabaseDSN); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		db, err := pgrepo.New(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Info("storage ready", zap.String("backend", "postgres"))
		return &Store{
			Users:   pgrepo.NewUserRepo(db),
			Todos:   pgrepo.NewTodoRepo(db),
			closeFn: db.Close,
		}, nil
	}

	db, err := sqliterepo.Open(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := migrate.SQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	log.Info("storage ready", zap.String("backend", "sqlite"), zap.String("path", cfg.SQLitePath))
	return &Store{
		Users:   sqliterepo.NewUserRepo(db),
		Todos:   sqliterepo.NewTodoRepo(db),
		closeFn: func() { _ = db.Close() },
	}, nil
}
