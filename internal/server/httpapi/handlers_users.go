package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// handleMe returns the authenticated user's profile.
func (s *HTTPServer) handleMe(c echo.Context) error {
	user, err := s.users.FindByID(c.Request().Context(), userID(c))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, userEnvelope{OK: true, User: newUserPayload(user)})
}

// handleUpdateMe mutates only the supplied profile fields.
func (s *HTTPServer) handleUpdateMe(c echo.Context) error {
	var req updateMeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Error: "invalid request body"})
	}
	if err := s.validator.Struct(&req); err != nil {
		return s.writeError(c, err)
	}

	user, err := s.users.UpdateProfile(c.Request().Context(), userID(c), req.Name, req.Email)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, userEnvelope{OK: true, User: newUserPayload(user)})
}

// handleListUsers is the admin-only listing of all accounts.
func (s *HTTPServer) handleListUsers(c echo.Context) error {
	all, err := s.users.List(c.Request().Context())
	if err != nil {
		return s.writeError(c, err)
	}

	payload := make([]adminUserPayload, 0, len(all))
	for _, u := range all {
		payload = append(payload, adminUserPayload{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			IsAdmin:   u.IsAdmin,
			CreatedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, usersEnvelope{OK: true, Users: payload})
}
