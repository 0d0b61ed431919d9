package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/ekomarov/tasktrack/internal/errs"
	"github.com/ekomarov/tasktrack/internal/model"
	"github.com/ekomarov/tasktrack/internal/repository"
)

type fakeUsers struct {
	byName map[string]*model.User
	nextID int64

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byName == nil {
		f.byName = map[string]*model.User{}
	}
	if _, exists := f.byName[u.Username]; exists {
		return errs.ErrAlreadyExists
	}
	f.nextID++
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	cpy := *u
	f.byName[u.Username] = &cpy
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range f.byName {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

type fakeTodos struct {
	byID map[uuid.UUID]*model.Todo

	updateErr error
	deleteErr error
}

var _ repository.TodoRepository = (*fakeTodos)(nil)

func (f *fakeTodos) Create(_ context.Context, t *model.Todo) error {
	if f.byID == nil {
		f.byID = map[uuid.UUID]*model.Todo{}
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now
	cpy := *t
	f.byID[t.ID] = &cpy
	return nil
}

func (f *fakeTodos) GetByID(_ context.Context, id uuid.UUID) (*model.Todo, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTodos) ListByUser(_ context.Context, userID int64) ([]model.Todo, error) {
	out := []model.Todo{}
	for _, t := range f.byID {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTodos) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*model.Todo, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	t, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if len(fields) == 0 {
		c := *t
		return &c, nil
	}
	for name, v := range fields {
		switch name {
		case "title":
			t.Title = v.(string)
		case "description":
			t.Description = v.(*string)
		case "priority":
			t.Priority = v.(model.Priority)
		case "category":
			t.Category = v.(*string)
		case "completed":
			t.Completed = v.(bool)
		case "completed_at":
			t.CompletedAt = v.(*time.Time)
		case "due_date":
			t.DueDate = v.(*string)
		default:
			return nil, errs.ErrValidation
		}
	}
	t.UpdatedAt = time.Now()
	c := *t
	return &c, nil
}

func (f *fakeTodos) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeTodos) Stats(_ context.Context, userID int64) (model.TodoStats, error) {
	var total, completed int
	for _, t := range f.byID {
		if t.UserID != userID {
			continue
		}
		total++
		if t.Completed {
			completed++
		}
	}
	return model.NewTodoStats(total, completed), nil
}
