package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hmori/flashcards/internal/server/auth"
	"github.com/hmori/flashcards/internal/server/models"
)

// handleRegister creates an account and immediately issues a credential.
func (s *HTTPServer) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Error: "invalid request body"})
	}
	if err := s.validator.Struct(&req); err != nil {
		return s.writeError(c, err)
	}

	user, err := s.users.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	s.logger.Info(c.Request().Context(), "user registered", "user_id", user.ID)
	return s.respondWithCredential(c, http.StatusCreated, user)
}

// handleLogin verifies credentials and issues a fresh token or session.
func (s *HTTPServer) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Error: "invalid request body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Error: "email and password are required"})
	}

	user, err := s.users.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return s.writeError(c, err)
	}

	return s.respondWithCredential(c, http.StatusOK, user)
}

// handleLogout destroys the server-side session, if there is one. Stateless
// bearer tokens have nothing to destroy; the response is 204 either way.
func (s *HTTPServer) handleLogout(c echo.Context) error {
	if presented, ok := s.extractCredential(c); ok {
		if err := s.authenticator.Invalidate(c.Request().Context(), presented); err != nil {
			return s.writeError(c, err)
		}
	}
	s.clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// respondWithCredential issues a credential for the user and writes the
// success envelope. Cookie credentials travel in Set-Cookie; bearer tokens in
// the body.
func (s *HTTPServer) respondWithCredential(c echo.Context, status int, user *models.User) error {
	cred, err := s.authenticator.Issue(c.Request().Context(), user)
	if err != nil {
		return s.writeError(c, err)
	}

	if cred.Cookie {
		c.SetCookie(&http.Cookie{
			Name:     auth.SessionCookieName,
			Value:    cred.Value,
			Path:     "/",
			MaxAge:   int(cred.TTL.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
		return c.JSON(status, sessionEnvelope{
			OK:        true,
			ExpiresIn: int64(cred.TTL.Seconds()),
			User:      newUserPayload(user),
		})
	}

	return c.JSON(status, tokenEnvelope{
		OK:          true,
		AccessToken: cred.Value,
		TokenType:   "Bearer",
		ExpiresIn:   int64(cred.TTL.Seconds()),
		User:        newUserPayload(user),
	})
}

func (s *HTTPServer) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
