package cards

import (
	"context"

	"github.com/hmori/flashcards/internal/server/models"
)

// Repository persists flashcards. Every method takes the owner's user id and
// filters by it inside the statement, so a card belonging to another user is
// indistinguishable from a missing one.
type Repository interface {
	ListActive(ctx context.Context, userID int64) ([]*models.FlashCard, error)
	Create(ctx context.Context, card *models.FlashCard) (*models.FlashCard, error)
	GetActive(ctx context.Context, userID, id int64) (*models.FlashCard, error)
	GetAny(ctx context.Context, userID, id int64) (*models.FlashCard, error)
	Update(ctx context.Context, card *models.FlashCard) (*models.FlashCard, error)
	SoftDelete(ctx context.Context, userID, id int64) error
	Restore(ctx context.Context, userID, id int64) (*models.FlashCard, error)
}
