package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ekomarov/tasktrack/internal/model"
)

const sessionCookie = "tasktrack_session"

// Session is the decoded state of a request's session cookie. UserID and
// Username are meaningful only when IsLoggedIn is true.
type Session struct {
	IsLoggedIn bool
	UserID     int64
	Username   string
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionManager issues and reads tamper-evident session cookies.
// The cookie value is an HS256-signed JWT carrying the user id and
// username; a bad or expired signature simply reads as logged out.
type SessionManager struct {
	signKey []byte
	ttl     time.Duration
	secure  bool
}

// NewSessionManager constructs a SessionManager. secure marks cookies
// Secure and should follow whether the server terminates TLS.
func NewSessionManager(signKey []byte, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{signKey: signKey, ttl: ttl, secure: secure}
}

// Issue signs a session for u and sets it on the response.
func (m *SessionManager) Issue(c echo.Context, u *model.User) error {
	now := time.Now()
	exp := now.Add(m.ttl)
	claims := sessionClaims{
		Username: u.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signKey)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Load reads the request's session. Missing, malformed, or expired
// cookies read as logged out, never as an error.
func (m *SessionManager) Load(c echo.Context) Session {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return Session{}
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(cookie.Value, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.signKey, nil
	})
	if err != nil || !parsed.Valid {
		return Session{}
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Session{}
	}
	return Session{IsLoggedIn: true, UserID: userID, Username: claims.Username}
}
