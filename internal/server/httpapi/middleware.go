package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hmori/flashcards/internal/server/auth"
	"github.com/hmori/flashcards/internal/server/config"
)

// ctxUserID is the echo context key the auth middleware stores the resolved
// user id under.
const ctxUserID = "user_id"

// userID returns the authenticated user's id set by requireAuth.
func userID(c echo.Context) int64 {
	id, _ := c.Get(ctxUserID).(int64)
	return id
}

// requestLogger emits one line per request through the structured logger.
func (s *HTTPServer) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		if err != nil {
			c.Error(err)
		}
		s.logger.Info(c.Request().Context(), "request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration", time.Since(start).String(),
		)
		return nil
	}
}

// requireAuth resolves the caller's identity from the request credential and
// stores the user id in the context. The rejection body never says why the
// credential was bad.
func (s *HTTPServer) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		presented, ok := s.extractCredential(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, errorEnvelope{Error: "missing or invalid bearer token"})
		}

		id, err := s.authenticator.Identify(c.Request().Context(), presented)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorEnvelope{Error: "invalid token"})
		}

		c.Set(ctxUserID, id)
		return next(c)
	}
}

// requireAdmin loads the authenticated user and requires the admin flag.
// Must be registered after requireAuth; it depends on the resolved identity.
func (s *HTTPServer) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := s.users.FindByID(c.Request().Context(), userID(c))
		if err != nil || !user.IsAdmin {
			return c.JSON(http.StatusForbidden, errorEnvelope{Error: "admin access only"})
		}
		return next(c)
	}
}

// extractCredential pulls the raw credential out of the request: the bearer
// token from the Authorization header, or the session cookie value when the
// server runs in session mode.
func (s *HTTPServer) extractCredential(c echo.Context) (string, bool) {
	if s.cfg.AuthMode == config.AuthModeSession {
		cookie, err := c.Cookie(auth.SessionCookieName)
		if err != nil || cookie.Value == "" {
			return "", false
		}
		return cookie.Value, true
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
