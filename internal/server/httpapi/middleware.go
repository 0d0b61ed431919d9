package httpapi

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const sessionContextKey = "tasktrack.session"

// RequestLogger returns middleware for structured request logging.
// Only metadata is logged, never payloads.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			log.Info("http",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("dur", time.Since(start)),
				zap.String("remote", c.RealIP()),
			)
			return nil
		}
	}
}

// Recover returns middleware that recovers from handler panics.
func Recover(log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic",
						zap.Any("reason", r),
						zap.ByteString("stack", debug.Stack()),
						zap.String("path", c.Request().URL.Path),
					)
					err = c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal"})
				}
			}()
			return next(c)
		}
	}
}

// requireSession loads the session cookie and rejects anonymous requests
// before any data access happens.
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess := s.sessions.Load(c)
		if !sess.IsLoggedIn {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		}
		c.Set(sessionContextKey, sess)
		return next(c)
	}
}

func sessionFromContext(c echo.Context) Session {
	if sess, ok := c.Get(sessionContextKey).(Session); ok {
		return sess
	}
	return Session{}
}
