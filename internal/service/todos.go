package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofrs/uuid/v5"

	"github.com/ekomarov/tasktrack/internal/errs"
	"github.com/ekomarov/tasktrack/internal/model"
	"github.com/ekomarov/tasktrack/internal/repository"
)

const titleMaxLen = 500

// CreateTodoInput carries client-supplied fields for a new todo.
// The owner always comes from the session, never from here.
type CreateTodoInput struct {
	Title       string
	Description string
	Priority    string
	Category    string
	DueDate     string
}

// TodoService enforces ownership and sanitizes payloads before they
// reach the persistence layer.
type TodoService interface {
	// Create validates input, applies defaults, and stores a new todo
	// owned by userID.
	Create(ctx context.Context, userID int64, in CreateTodoInput) (*model.Todo, error)
	// List returns the user's todos, most recent first.
	List(ctx context.Context, userID int64) ([]model.Todo, error)
	// Get loads one todo after the ownership check.
	Get(ctx context.Context, userID int64, id uuid.UUID) (*model.Todo, error)
	// Update filters patch down to recognized mutable fields, validates
	// them, derives completed_at bookkeeping, and applies the result.
	Update(ctx context.Context, userID int64, id uuid.UUID, patch map[string]any) (*model.Todo, error)
	// Delete removes one todo after the ownership check.
	Delete(ctx context.Context, userID int64, id uuid.UUID) error
	// Stats returns completion totals for the user.
	Stats(ctx context.Context, userID int64) (model.TodoStats, error)
}

type TodoServiceImpl struct {
	todos repository.TodoRepository
}

// NewTodoService constructs TodoService.
func NewTodoService(todos repository.TodoRepository) *TodoServiceImpl {
	return &TodoServiceImpl{todos: todos}
}

// Create applies the creation contract: required trimmed title, silent
// priority default, trimmed optionals collapsed to absent, opaque due
// date passthrough.
func (s *TodoServiceImpl) Create(ctx context.Context, userID int64, in CreateTodoInput) (*model.Todo, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", errs.ErrValidation)
	}
	if utf8.RuneCountInString(title) > titleMaxLen {
		return nil, fmt.Errorf("%w: title must be at most %d characters", errs.ErrValidation, titleMaxLen)
	}

	// Unlike the update path, an unknown priority is not an error here.
	priority, _ := model.ParsePriority(in.Priority)

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	t := &model.Todo{
		ID:          id,
		UserID:      userID,
		Title:       title,
		Description: optionalText(in.Description),
		Priority:    priority,
		Category:    optionalText(in.Category),
		DueDate:     optionalText(in.DueDate),
	}
	if err := s.todos.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// List returns the user's todos.
func (s *TodoServiceImpl) List(ctx context.Context, userID int64) ([]model.Todo, error) {
	return s.todos.ListByUser(ctx, userID)
}

// Get loads a todo the user owns.
func (s *TodoServiceImpl) Get(ctx context.Context, userID int64, id uuid.UUID) (*model.Todo, error) {
	return s.authorize(ctx, userID, id)
}

// Update filters and validates patch, then delegates the surviving
// fields (plus derived completed_at) to the repository.
func (s *TodoServiceImpl) Update(ctx context.Context, userID int64, id uuid.UUID, patch map[string]any) (*model.Todo, error) {
	current, err := s.authorize(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	fields, err := filterPatch(current, patch)
	if err != nil {
		return nil, err
	}
	return s.todos.Update(ctx, id, fields)
}

// Delete removes a todo the user owns.
func (s *TodoServiceImpl) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	if _, err := s.authorize(ctx, userID, id); err != nil {
		return err
	}
	ok, err := s.todos.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		// deleted underneath us between the ownership check and here
		return errs.ErrNotFound
	}
	return nil
}

// Stats returns completion totals for the user.
func (s *TodoServiceImpl) Stats(ctx context.Context, userID int64) (model.TodoStats, error) {
	return s.todos.Stats(ctx, userID)
}

// authorize loads the todo and checks ownership. not-found is checked
// before ownership, so the two outcomes stay distinguishable.
func (s *TodoServiceImpl) authorize(ctx context.Context, userID int64, id uuid.UUID) (*model.Todo, error) {
	t, err := s.todos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, errs.ErrForbidden
	}
	return t, nil
}

// filterPatch keeps only recognized mutable fields from a raw payload,
// validates the strict ones, and derives completed_at from the
// completion transition. Unrecognized keys are dropped, not errors.
func filterPatch(current *model.Todo, patch map[string]any) (map[string]any, error) {
	fields := make(map[string]any, len(patch))
	for key, raw := range patch {
		switch key {
		case "title":
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: title must be a string", errs.ErrValidation)
			}
			s = strings.TrimSpace(s)
			if s == "" {
				return nil, fmt.Errorf("%w: title must not be empty", errs.ErrValidation)
			}
			if utf8.RuneCountInString(s) > titleMaxLen {
				return nil, fmt.Errorf("%w: title must be at most %d characters", errs.ErrValidation, titleMaxLen)
			}
			fields["title"] = s
		case "priority":
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: priority must be a string", errs.ErrValidation)
			}
			p, known := model.ParsePriority(s)
			if !known {
				return nil, fmt.Errorf("%w: priority must be high, medium or low", errs.ErrValidation)
			}
			fields["priority"] = p
		case "description":
			fields["description"] = optionalPatchText(raw)
		case "category":
			fields["category"] = optionalPatchText(raw)
		case "due_date":
			// opaque passthrough, null clears
			if s, ok := raw.(string); ok && s != "" {
				fields["due_date"] = &s
			} else {
				fields["due_date"] = (*string)(nil)
			}
		case "completed":
			b, ok := raw.(bool)
			if !ok {
				continue
			}
			fields["completed"] = b
			switch {
			case b && !current.Completed:
				now := time.Now().UTC()
				fields["completed_at"] = &now
			case !b && current.Completed:
				fields["completed_at"] = (*time.Time)(nil)
			}
			// b == current.Completed: completed_at left untouched
		default:
			// unrecognized keys are silently dropped
		}
	}
	return fields, nil
}

// optionalText trims s and collapses empty to absent.
func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// optionalPatchText handles a string-or-null patch value.
func optionalPatchText(raw any) *string {
	if s, ok := raw.(string); ok {
		return optionalText(s)
	}
	return nil
}
