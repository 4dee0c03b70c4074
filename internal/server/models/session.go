package models

import "time"

// Session is a server-side login session used by the cookie authenticator.
// The ID is the opaque value delivered to the client inside a signed cookie.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}
