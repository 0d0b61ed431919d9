// Package sqlite contains embedded-backend implementations of repository
// interfaces over a single database file. The driver is pure Go
// (modernc.org/sqlite), so local use needs no network and no cgo.
package sqlite

import (
	"database/sql"
	"errors"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Open opens (creating if needed) the database file at path.
// WAL keeps the single-writer journal mode, busy_timeout covers the
// racing first-requests on a shared file, foreign_keys enables the
// users->todos cascade.
func Open(path string) (*sql.DB, error) {
	dsn := "file:" + path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// timeLayout is how timestamps are stored. Fixed-width fractional
// seconds keep created_at DESC ordering lexicographic; RFC3339Nano
// would trim trailing zeros and break it.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func fmtTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func parseTime(s string) (time.Time, error) { return time.Parse(timeLayout, s) }

// isUniqueViolation reports whether the error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
