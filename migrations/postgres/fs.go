// Package postgres embeds SQL migrations for the networked backend.
package postgres

import "embed"

// FS holds the goose migration files.
//
//go:embed *.sql
var FS embed.FS
