package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"

	"github.com/hmori/flashcards/internal/common"
	"github.com/hmori/flashcards/internal/dbx"
	"github.com/hmori/flashcards/internal/server/models"
	"github.com/hmori/flashcards/internal/server/repositories/repomanager"
)

// SessionCookieName is the cookie the session authenticator reads and writes.
const SessionCookieName = "flashcards_session"

// SessionAuthenticator implements Authenticator with server-side sessions.
// The session id is a UUID stored in the sessions table; the value delivered
// to the client is that id encoded and signed with securecookie, so a
// tampered cookie fails before the database is ever consulted.
type SessionAuthenticator struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
	codec *securecookie.SecureCookie
	ttl   time.Duration
}

func NewSessionAuthenticator(db *sql.DB, repos repomanager.RepositoryManager, hashKey []byte, ttl time.Duration) *SessionAuthenticator {
	return &SessionAuthenticator{
		db:    db,
		repos: repos,
		codec: securecookie.New(hashKey, nil),
		ttl:   ttl,
	}
}

// Issue creates a new session for the user. The user's expired sessions are
// purged in the same transaction, so the table does not accumulate garbage
// across logins.
func (a *SessionAuthenticator) Issue(ctx context.Context, user *models.User) (*Credential, error) {
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(a.ttl),
	}

	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.repos.Sessions(tx)
		if err := repo.DeleteExpired(ctx, user.ID); err != nil {
			return err
		}
		return repo.Create(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	encoded, err := a.codec.Encode(SessionCookieName, session.ID)
	if err != nil {
		return nil, err
	}
	return &Credential{Value: encoded, TTL: a.ttl, Cookie: true}, nil
}

// Identify decodes the cookie value, looks the session up and checks expiry.
func (a *SessionAuthenticator) Identify(ctx context.Context, presented string) (int64, error) {
	id, err := a.decode(presented)
	if err != nil {
		return 0, common.ErrUnauthorized
	}

	session, err := a.repos.Sessions(a.db).Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return 0, common.ErrUnauthorized
		}
		return 0, err
	}
	if time.Now().After(session.ExpiresAt) {
		return 0, common.ErrUnauthorized
	}
	return session.UserID, nil
}

// Invalidate destroys the session row; used by logout.
func (a *SessionAuthenticator) Invalidate(ctx context.Context, presented string) error {
	id, err := a.decode(presented)
	if err != nil {
		// An undecodable cookie has no server-side state to destroy.
		return nil
	}
	return a.repos.Sessions(a.db).Delete(ctx, id)
}

func (a *SessionAuthenticator) decode(presented string) (string, error) {
	var id string
	if err := a.codec.Decode(SessionCookieName, presented, &id); err != nil {
		return "", err
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", err
	}
	return id, nil
}
