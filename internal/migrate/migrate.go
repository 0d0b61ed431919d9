// Package migrate applies embedded SQL migrations on startup.
// Migrations are written to be repeatable, so racing or re-running the
// startup step is a no-op.
package migrate

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	pgmigrations "github.com/ekomarov/tasktrack/migrations/postgres"
	sqlitemigrations "github.com/ekomarov/tasktrack/migrations/sqlite"
)

// Postgres runs all pending migrations against the given DSN.
func Postgres(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(pgmigrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// SQLite runs all pending migrations against an open embedded database.
func SQLite(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(sqlitemigrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}
