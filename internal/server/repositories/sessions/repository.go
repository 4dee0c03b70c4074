package sessions

import (
	"context"

	"github.com/hmori/flashcards/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, userID int64) error
}
