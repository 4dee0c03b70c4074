package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/hmori/flashcards/internal/common"
	"github.com/hmori/flashcards/internal/dbx"
	"github.com/hmori/flashcards/internal/server/models"
	"github.com/hmori/flashcards/internal/server/repositories/cards"
	"github.com/hmori/flashcards/internal/server/repositories/sessions"
	"github.com/hmori/flashcards/internal/server/repositories/users"
)

// In-memory repository fakes. The manager hands out the same instances for
// every DBTX so a test can seed and inspect state directly.

type fakeUsersRepo struct {
	byID   map[int64]*models.User
	nextID int64
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byID: map[int64]*models.User{}, nextID: 1}
}

func (r *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, common.ErrConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byID[user.ID] = user
	return user, nil
}

func (r *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (r *fakeUsersRepo) Update(ctx context.Context, user *models.User) (*models.User, error) {
	if _, ok := r.byID[user.ID]; !ok {
		return nil, common.ErrNotFound
	}
	for id, u := range r.byID {
		if id != user.ID && u.Email == user.Email {
			return nil, common.ErrConflict
		}
	}
	user.UpdatedAt = time.Now()
	r.byID[user.ID] = user
	return user, nil
}

func (r *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	var result []*models.User
	for id := int64(1); id < r.nextID; id++ {
		if u, ok := r.byID[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

type fakeCardsRepo struct {
	byID   map[int64]*models.FlashCard
	nextID int64
}

func newFakeCardsRepo() *fakeCardsRepo {
	return &fakeCardsRepo{byID: map[int64]*models.FlashCard{}, nextID: 1}
}

func (r *fakeCardsRepo) ListActive(ctx context.Context, userID int64) ([]*models.FlashCard, error) {
	var result []*models.FlashCard
	for id := r.nextID - 1; id >= 1; id-- {
		c, ok := r.byID[id]
		if ok && c.UserID == userID && !c.Deleted() {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeCardsRepo) Create(ctx context.Context, card *models.FlashCard) (*models.FlashCard, error) {
	card.ID = r.nextID
	r.nextID++
	card.CreatedAt = time.Now()
	card.UpdatedAt = card.CreatedAt
	r.byID[card.ID] = card
	return card, nil
}

func (r *fakeCardsRepo) GetActive(ctx context.Context, userID, id int64) (*models.FlashCard, error) {
	c, ok := r.byID[id]
	if !ok || c.UserID != userID || c.Deleted() {
		return nil, common.ErrNotFound
	}
	return c, nil
}

func (r *fakeCardsRepo) GetAny(ctx context.Context, userID, id int64) (*models.FlashCard, error) {
	c, ok := r.byID[id]
	if !ok || c.UserID != userID {
		return nil, common.ErrNotFound
	}
	return c, nil
}

func (r *fakeCardsRepo) Update(ctx context.Context, card *models.FlashCard) (*models.FlashCard, error) {
	c, ok := r.byID[card.ID]
	if !ok || c.UserID != card.UserID || c.Deleted() {
		return nil, common.ErrNotFound
	}
	card.UpdatedAt = time.Now()
	r.byID[card.ID] = card
	return card, nil
}

func (r *fakeCardsRepo) SoftDelete(ctx context.Context, userID, id int64) error {
	c, ok := r.byID[id]
	if !ok || c.UserID != userID || c.Deleted() {
		return common.ErrNotFound
	}
	now := time.Now()
	c.DeletedAt = &now
	return nil
}

func (r *fakeCardsRepo) Restore(ctx context.Context, userID, id int64) (*models.FlashCard, error) {
	c, ok := r.byID[id]
	if !ok || c.UserID != userID {
		return nil, common.ErrNotFound
	}
	c.DeletedAt = nil
	c.UpdatedAt = time.Now()
	return c, nil
}

type fakeRepoManager struct {
	users *fakeUsersRepo
	cards *fakeCardsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{users: newFakeUsersRepo(), cards: newFakeCardsRepo()}
}

func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                  { return m.users }
func (m *fakeRepoManager) Cards(db dbx.DBTX) cards.Repository                  { return m.cards }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessions.Repository            { return nil }
