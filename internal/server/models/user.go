package models

import "time"

// User is a registered account. PasswordHash is the bcrypt hash of the
// plaintext password; the plaintext itself is never stored and the hash is
// never serialized into API responses.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
