// Package sqlite embeds SQL migrations for the embedded backend.
package sqlite

import "embed"

// FS holds the goose migration files.
//
//go:embed *.sql
var FS embed.FS
