package models

import "time"

// FlashCard is a two-sided card owned by exactly one user.
//
// DeletedAt implements soft deletion: nil means the card is active, non-nil
// holds the moment it was deleted. A soft-deleted card is excluded from
// listing and lookup until restored.
type FlashCard struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Front     string     `json:"front"`
	Back      string     `json:"back"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

// Deleted reports whether the card is currently soft-deleted.
func (c *FlashCard) Deleted() bool { return c.DeletedAt != nil }
