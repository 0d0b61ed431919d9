// Package httpapi exposes the task tracker's JSON HTTP surface.
// Handlers stay thin: parse the request, call a service, shape the
// response. All invariants live in the services below.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ekomarov/tasktrack/internal/errs"
	"github.com/ekomarov/tasktrack/internal/model"
	"github.com/ekomarov/tasktrack/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	auth     service.AuthService
	todos    service.TodoService
	sessions *SessionManager
	log      *zap.Logger
}

// New constructs a Server with injected services.
func New(auth service.AuthService, todos service.TodoService, sessions *SessionManager, log *zap.Logger) *Server {
	return &Server{auth: auth, todos: todos, sessions: sessions, log: log}
}

// Routes mounts middleware and all endpoints on e.
func (s *Server) Routes(e *echo.Echo) {
	e.Use(Recover(s.log))
	e.Use(RequestLogger(s.log))

	api := e.Group("/api")
	api.POST("/auth/register", s.handleRegister)
	api.POST("/auth/login", s.handleLogin)
	api.POST("/auth/logout", s.handleLogout)
	api.GET("/auth/session", s.handleSession)

	todos := api.Group("/todos", s.requireSession)
	todos.GET("", s.handleListTodos)
	todos.POST("", s.handleCreateTodo)
	todos.GET("/stats", s.handleStats)
	todos.PATCH("/:id", s.handleUpdateTodo)
	todos.DELETE("/:id", s.handleDeleteTodo)
}

// --- wire shapes ---

type errorResponse struct {
	Error string `json:"error"`
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Category    string `json:"category"`
	DueDate     string `json:"due_date"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type sessionResponse struct {
	IsLoggedIn bool          `json:"isLoggedIn"`
	User       *userResponse `json:"user,omitempty"`
}

type todoResponse struct {
	ID          string     `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Priority    string     `json:"priority"`
	Category    *string    `json:"category"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	DueDate     *string    `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type statsResponse struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	CompletionRate int `json:"completionRate"`
}

func toUserResponse(u *model.User) *userResponse {
	return &userResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

func toTodoResponse(t *model.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID.String(),
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Category:    t.Category,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// writeError maps sentinel errors to statuses. Anything unrecognized is
// a backend failure: logged here, surfaced as a generic storage error.
func (s *Server) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, errs.ErrInvalidID):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid id"})
	case errors.Is(err, errs.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, errs.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorResponse{Error: "forbidden"})
	case errors.Is(err, errs.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, errs.ErrAlreadyExists):
		return c.JSON(http.StatusConflict, errorResponse{Error: "username already taken"})
	default:
		s.log.Error("storage", zap.Error(err), zap.String("path", c.Request().URL.Path))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "storage error"})
	}
}

// --- auth ---

func (s *Server) handleRegister(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}
	u, err := s.auth.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(u))
}

func (s *Server) handleLogin(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}
	u, err := s.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}
	if err := s.sessions.Issue(c, u); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

func (s *Server) handleLogout(c echo.Context) error {
	s.sessions.Clear(c)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleSession(c echo.Context) error {
	sess := s.sessions.Load(c)
	if !sess.IsLoggedIn {
		return c.JSON(http.StatusOK, sessionResponse{})
	}
	u, err := s.auth.GetUser(c.Request().Context(), sess.UserID)
	if err != nil {
		// stale cookie for a deleted account
		if errors.Is(err, errs.ErrNotFound) {
			s.sessions.Clear(c)
			return c.JSON(http.StatusOK, sessionResponse{})
		}
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, sessionResponse{IsLoggedIn: true, User: toUserResponse(u)})
}

// --- todos ---

func (s *Server) handleListTodos(c echo.Context) error {
	sess := sessionFromContext(c)
	list, err := s.todos.List(c.Request().Context(), sess.UserID)
	if err != nil {
		return s.writeError(c, err)
	}
	out := make([]todoResponse, 0, len(list))
	for i := range list {
		out = append(out, toTodoResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateTodo(c echo.Context) error {
	sess := sessionFromContext(c)
	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}
	t, err := s.todos.Create(c.Request().Context(), sess.UserID, service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toTodoResponse(t))
}

func (s *Server) handleUpdateTodo(c echo.Context) error {
	sess := sessionFromContext(c)
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return s.writeError(c, errs.ErrInvalidID)
	}
	patch := map[string]any{}
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}
	t, err := s.todos.Update(c.Request().Context(), sess.UserID, id, patch)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toTodoResponse(t))
}

func (s *Server) handleDeleteTodo(c echo.Context) error {
	sess := sessionFromContext(c)
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return s.writeError(c, errs.ErrInvalidID)
	}
	if err := s.todos.Delete(c.Request().Context(), sess.UserID, id); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleStats(c echo.Context) error {
	sess := sessionFromContext(c)
	st, err := s.todos.Stats(c.Request().Context(), sess.UserID)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, statsResponse{
		Total:          st.Total,
		Completed:      st.Completed,
		CompletionRate: st.CompletionRate,
	})
}
