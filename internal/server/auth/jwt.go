// Package auth implements credential issuance and verification: signed
// bearer tokens (HS256 JWT) and server-side cookie sessions, both behind the
// Authenticator interface.
package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hmori/flashcards/internal/common"
	"github.com/hmori/flashcards/internal/server/models"
)

// Claims is the token claim set: the registered claims plus the bearer's
// email. The payload is signed, not encrypted, so nothing secret goes here.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenCodec issues and verifies HS256-signed access tokens bound to a
// configured issuer and audience.
type TokenCodec struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	leeway   time.Duration
}

// NewTokenCodec constructs a codec from the configured secret, expected
// issuer/audience, token TTL and clock-skew leeway.
func NewTokenCodec(secret []byte, issuer, audience string, ttl, leeway time.Duration) *TokenCodec {
	return &TokenCodec{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		leeway:   leeway,
	}
}

// now is a seam for tests that need to shift the issuing clock.
var now = time.Now

// Generate signs a token for the user, valid from now until now+TTL.
func (c *TokenCodec) Generate(user *models.User) (string, error) {
	issuedAt := now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(c.ttl)),
			Subject:   strconv.FormatInt(user.ID, 10),
		},
		Email: user.Email,
	})
	return token.SignedString(c.secret)
}

// Verify checks signature, signing method, issuer, audience and the validity
// window (with leeway), returning the subject user id. Every failure mode
// collapses into common.ErrInvalidToken so responses cannot be used as an
// oracle for why a token was rejected.
func (c *TokenCodec) Verify(tokenString string) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithLeeway(c.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, common.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, common.ErrInvalidToken
	}
	return userID, nil
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration { return c.ttl }
