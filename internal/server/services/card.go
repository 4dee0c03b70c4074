package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hmori/flashcards/internal/common"
	"github.com/hmori/flashcards/internal/server/models"
	"github.com/hmori/flashcards/internal/server/repositories/repomanager"
)

// CardService implements the ownership-scoped flashcard operations. The
// authenticated user id is threaded through every call; the repositories
// embed it in each statement, so another user's card id behaves exactly like
// a missing one.
type CardService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewCardService constructs a CardService over the shared DB handle.
func NewCardService(db *sql.DB, repos repomanager.RepositoryManager) *CardService {
	return &CardService{db: db, repos: repos}
}

// List returns the user's active cards, most recent id first.
func (s *CardService) List(ctx context.Context, userID int64) ([]*models.FlashCard, error) {
	return s.repos.Cards(s.db).ListActive(ctx, userID)
}

// Create stores a new card owned by userID.
func (s *CardService) Create(ctx context.Context, userID int64, front, back string) (*models.FlashCard, error) {
	card := &models.FlashCard{UserID: userID, Front: front, Back: back}
	return s.repos.Cards(s.db).Create(ctx, card)
}

// Get returns an active card by id.
func (s *CardService) Get(ctx context.Context, userID, id int64) (*models.FlashCard, error) {
	return s.repos.Cards(s.db).GetActive(ctx, userID, id)
}

// Update mutates only the supplied fields of an active card.
func (s *CardService) Update(ctx context.Context, userID, id int64, front, back *string) (*models.FlashCard, error) {
	repo := s.repos.Cards(s.db)

	card, err := repo.GetActive(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if front != nil {
		card.Front = *front
	}
	if back != nil {
		card.Back = *back
	}

	return repo.Update(ctx, card)
}

// SoftDelete stamps the card deleted. Already-deleted and foreign cards both
// come back as common.ErrNotFound.
func (s *CardService) SoftDelete(ctx context.Context, userID, id int64) error {
	return s.repos.Cards(s.db).SoftDelete(ctx, userID, id)
}

// Restore brings a soft-deleted card back. Restoring a card that was never
// deleted is a no-op that still returns the card.
func (s *CardService) Restore(ctx context.Context, userID, id int64) (*models.FlashCard, error) {
	repo := s.repos.Cards(s.db)

	card, err := repo.GetAny(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	if !card.Deleted() {
		return card, nil
	}
	return repo.Restore(ctx, userID, id)
}
