package auth

import (
	"context"
	"time"

	"github.com/hmori/flashcards/internal/server/models"
)

// Credential is an issued proof of identity. For the bearer strategy Value is
// the signed JWT carried in the Authorization header; for the session
// strategy it is the encoded cookie value and Cookie is true.
type Credential struct {
	Value  string
	TTL    time.Duration
	Cookie bool
}

// Authenticator abstracts the two interchangeable auth strategies (stateless
// bearer token and server-side cookie session). Authentication yields a user
// id only; resource handlers must still scope every query by that id.
type Authenticator interface {
	// Issue creates a credential for a freshly registered or logged-in user.
	Issue(ctx context.Context, user *models.User) (*Credential, error)

	// Identify resolves the user id behind a presented credential value.
	// Failures are reported as common.ErrInvalidToken or
	// common.ErrUnauthorized without distinguishing the cause.
	Identify(ctx context.Context, presented string) (int64, error)

	// Invalidate destroys server-side state for the credential, if any.
	// A no-op for stateless bearer tokens.
	Invalidate(ctx context.Context, presented string) error
}

// BearerAuthenticator implements Authenticator with self-contained signed
// tokens. Nothing is stored server-side; tokens simply expire.
type BearerAuthenticator struct {
	codec *TokenCodec
}

func NewBearerAuthenticator(codec *TokenCodec) *BearerAuthenticator {
	return &BearerAuthenticator{codec: codec}
}

func (a *BearerAuthenticator) Issue(_ context.Context, user *models.User) (*Credential, error) {
	token, err := a.codec.Generate(user)
	if err != nil {
		return nil, err
	}
	return &Credential{Value: token, TTL: a.codec.TTL()}, nil
}

func (a *BearerAuthenticator) Identify(_ context.Context, presented string) (int64, error) {
	return a.codec.Verify(presented)
}

func (a *BearerAuthenticator) Invalidate(context.Context, string) error { return nil }
