// Package model defines domain entities used by services and repositories.
package model

import (
	"math"
	"time"

	"github.com/gofrs/uuid/v5"
)

// Priority classifies how urgent a todo is.
type Priority string

// Valid priorities. Medium is the default when a request omits or
// mangles the value.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority returns the priority for s and whether s named a known one.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), true
	}
	return PriorityMedium, false
}

// User is a registered account. PasswordHash never leaves the
// crypto/persistence layers.
type User struct {
	ID           int64     // PK, monotonic
	Username     string    // unique, case-sensitive, immutable
	PasswordHash []byte    // bcrypt, opaque
	CreatedAt    time.Time // assigned at insert
}

// Todo is a single task record owned by exactly one user.
//
// CompletedAt is bookkeeping for the completion transition: it is set
// when Completed flips false->true, cleared when Completed flips to
// false, and otherwise left alone. It is never recomputed on read.
type Todo struct {
	ID          uuid.UUID  // PK
	UserID      int64      // FK -> users.id, immutable
	Title       string     // required, trimmed, <=500 chars
	Description *string    // optional, trimmed
	Priority    Priority   // defaults to medium
	Category    *string    // optional, free text
	Completed   bool
	CompletedAt *time.Time
	DueDate     *string // opaque date string, no timezone semantics
	CreatedAt   time.Time
	UpdatedAt   time.Time // refreshed on every mutation
}

// TodoStats aggregates completion progress for one user.
type TodoStats struct {
	Total          int
	Completed      int
	CompletionRate int // round(100*Completed/Total), 0 when Total == 0
}

// NewTodoStats derives the completion rate, guarding the zero-todo case.
func NewTodoStats(total, completed int) TodoStats {
	s := TodoStats{Total: total, Completed: completed}
	if total > 0 {
		s.CompletionRate = int(math.Round(100 * float64(completed) / float64(total)))
	}
	return s
}
