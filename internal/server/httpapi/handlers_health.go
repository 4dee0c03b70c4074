package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *HTTPServer) handleRoot(c echo.Context) error {
	return c.String(http.StatusOK, "Flashcards API")
}

// handleHealth answers with the database clock, or a generic 500 when the
// store is unreachable.
func (s *HTTPServer) handleHealth(c echo.Context) error {
	dbTime, err := s.health.Check(c.Request().Context())
	if err != nil {
		s.logger.Error(c.Request().Context(), "health check failed", "error", err.Error())
		return c.JSON(http.StatusInternalServerError, healthErrEnvelope{Error: "database unreachable"})
	}
	return c.JSON(http.StatusOK, healthOKEnvelope{
		Result: true,
		DBTime: dbTime.Format("2006-01-02 15:04:05"),
	})
}
