// Package cards provides a PostgreSQL-backed repository for flashcards with
// soft deletion.
package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hmori/flashcards/internal/common"
	"github.com/hmori/flashcards/internal/dbx"
	"github.com/hmori/flashcards/internal/server/models"
)

// PostgresRepository implements card storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListActive returns the user's non-deleted cards, most recent id first.
func (r *PostgresRepository) ListActive(ctx context.Context, userID int64) ([]*models.FlashCard, error) {
	query := `
		SELECT id, user_id, front, back, created_at, updated_at, deleted_at
		FROM flash_cards
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.FlashCard
	for rows.Next() {
		card := &models.FlashCard{}
		if err := rows.Scan(
			&card.ID, &card.UserID, &card.Front, &card.Back,
			&card.CreatedAt, &card.UpdatedAt, &card.DeletedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, card)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts a new card owned by card.UserID.
func (r *PostgresRepository) Create(ctx context.Context, card *models.FlashCard) (*models.FlashCard, error) {
	query := `
		INSERT INTO flash_cards (user_id, front, back)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, card.UserID, card.Front, card.Back).
		Scan(&card.ID, &card.CreatedAt, &card.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return card, nil
}

// GetActive returns a non-deleted card by id, scoped to the owner.
func (r *PostgresRepository) GetActive(ctx context.Context, userID, id int64) (*models.FlashCard, error) {
	query := `
		SELECT id, user_id, front, back, created_at, updated_at, deleted_at
		FROM flash_cards
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, id))
}

// GetAny returns a card by id regardless of deletion state, scoped to the owner.
// Restore uses it to locate soft-deleted rows.
func (r *PostgresRepository) GetAny(ctx context.Context, userID, id int64) (*models.FlashCard, error) {
	query := `
		SELECT id, user_id, front, back, created_at, updated_at, deleted_at
		FROM flash_cards
		WHERE user_id = $1 AND id = $2
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, id))
}

// Update persists front/back changes to an active card.
func (r *PostgresRepository) Update(ctx context.Context, card *models.FlashCard) (*models.FlashCard, error) {
	query := `
		UPDATE flash_cards
		SET front = $3, back = $4, updated_at = NOW()
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, card.UserID, card.ID, card.Front, card.Back).
		Scan(&card.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return card, nil
}

// SoftDelete stamps deleted_at on an active card. A card that is already
// deleted, missing, or owned by someone else yields common.ErrNotFound.
func (r *PostgresRepository) SoftDelete(ctx context.Context, userID, id int64) error {
	query := `
		UPDATE flash_cards
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, userID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Restore clears deleted_at and returns the card.
func (r *PostgresRepository) Restore(ctx context.Context, userID, id int64) (*models.FlashCard, error) {
	query := `
		UPDATE flash_cards
		SET deleted_at = NULL, updated_at = NOW()
		WHERE user_id = $1 AND id = $2
		RETURNING id, user_id, front, back, created_at, updated_at, deleted_at
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, userID, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.FlashCard, error) {
	card := &models.FlashCard{}
	err := row.Scan(
		&card.ID, &card.UserID, &card.Front, &card.Back,
		&card.CreatedAt, &card.UpdatedAt, &card.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return card, nil
}
