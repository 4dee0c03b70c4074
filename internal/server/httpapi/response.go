package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hmori/flashcards/internal/common"
	"github.com/hmori/flashcards/internal/server/models"
)

// errorEnvelope is the single-message error shape: {"ok":false,"error":"..."}.
type errorEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// fieldErrorEnvelope is the validation shape: {"ok":false,"errors":{f:[m]}}.
type fieldErrorEnvelope struct {
	OK     bool               `json:"ok"`
	Errors common.FieldErrors `json:"errors"`
}

// userPayload is the public view of a user; the password hash never leaves
// the models layer.
type userPayload struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func newUserPayload(u *models.User) userPayload {
	return userPayload{ID: u.ID, Name: u.Name, Email: u.Email}
}

// adminUserPayload is the admin listing view, including the flag and
// creation time.
type adminUserPayload struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

// tokenEnvelope is the register/login success shape in bearer mode.
type tokenEnvelope struct {
	OK          bool        `json:"ok"`
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int64       `json:"expires_in"`
	User        userPayload `json:"user"`
}

// sessionEnvelope is the register/login success shape in session mode; the
// credential itself travels in the Set-Cookie header.
type sessionEnvelope struct {
	OK        bool        `json:"ok"`
	ExpiresIn int64       `json:"expires_in"`
	User      userPayload `json:"user"`
}

type userEnvelope struct {
	OK   bool        `json:"ok"`
	User userPayload `json:"user"`
}

type cardEnvelope struct {
	OK   bool              `json:"ok"`
	Card *models.FlashCard `json:"card"`
}

type cardsEnvelope struct {
	OK    bool                `json:"ok"`
	Cards []*models.FlashCard `json:"cards"`
}

type usersEnvelope struct {
	OK    bool               `json:"ok"`
	Users []adminUserPayload `json:"users"`
}

type healthOKEnvelope struct {
	Result bool   `json:"result"`
	DBTime string `json:"db_time"`
}

type healthErrEnvelope struct {
	Result bool   `json:"result"`
	Error  string `json:"error"`
}

// writeError translates a service error into the HTTP error taxonomy. Every
// handler funnels its failures through here so nothing leaks to the transport
// as an unhandled fault.
func (s *HTTPServer) writeError(c echo.Context, err error) error {
	var fieldErrs common.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		return c.JSON(http.StatusUnprocessableEntity, fieldErrorEnvelope{Errors: fieldErrs})
	case errors.Is(err, common.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorEnvelope{Error: "not found"})
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, errorEnvelope{Error: "invalid credentials"})
	case errors.Is(err, common.ErrForbidden):
		return c.JSON(http.StatusForbidden, errorEnvelope{Error: "admin access only"})
	default:
		s.logger.Error(c.Request().Context(), "handler error", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, errorEnvelope{Error: "internal error"})
	}
}
