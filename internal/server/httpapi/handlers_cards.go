package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hmori/flashcards/internal/common"
	"github.com/hmori/flashcards/internal/server/models"
)

// cardID parses the :id route parameter. A non-numeric id behaves like a
// missing card.
func cardID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrNotFound
	}
	return id, nil
}

// handleListCards returns the caller's active cards, most recent id first.
func (s *HTTPServer) handleListCards(c echo.Context) error {
	result, err := s.cards.List(c.Request().Context(), userID(c))
	if err != nil {
		return s.writeError(c, err)
	}
	if result == nil {
		result = []*models.FlashCard{}
	}
	return c.JSON(http.StatusOK, cardsEnvelope{OK: true, Cards: result})
}

// handleCreateCard stores a new card owned by the caller.
func (s *HTTPServer) handleCreateCard(c echo.Context) error {
	var req createCardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Error: "invalid request body"})
	}
	if err := s.validator.Struct(&req); err != nil {
		return s.writeError(c, err)
	}

	card, err := s.cards.Create(c.Request().Context(), userID(c), req.Front, req.Back)
	if err != nil {
		return s.writeError(c, err)
	}

	c.Response().Header().Set("Location", fmt.Sprintf("/api/flash-cards/%d", card.ID))
	return c.JSON(http.StatusCreated, cardEnvelope{OK: true, Card: card})
}

// handleGetCard returns one active card.
func (s *HTTPServer) handleGetCard(c echo.Context) error {
	id, err := cardID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	card, err := s.cards.Get(c.Request().Context(), userID(c), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, cardEnvelope{OK: true, Card: card})
}

// handleUpdateCard mutates only the supplied fields of an active card.
func (s *HTTPServer) handleUpdateCard(c echo.Context) error {
	id, err := cardID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req updateCardRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorEnvelope{Error: "invalid request body"})
	}
	if err := s.validator.Struct(&req); err != nil {
		return s.writeError(c, err)
	}

	card, err := s.cards.Update(c.Request().Context(), userID(c), id, req.Front, req.Back)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, cardEnvelope{OK: true, Card: card})
}

// handleDeleteCard soft-deletes a card.
func (s *HTTPServer) handleDeleteCard(c echo.Context) error {
	id, err := cardID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	if err := s.cards.SoftDelete(c.Request().Context(), userID(c), id); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// handleRestoreCard brings a soft-deleted card back; restoring an active card
// is a no-op that still returns it.
func (s *HTTPServer) handleRestoreCard(c echo.Context) error {
	id, err := cardID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	card, err := s.cards.Restore(c.Request().Context(), userID(c), id)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, cardEnvelope{OK: true, Card: card})
}
