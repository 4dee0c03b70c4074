package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hmori/flashcards/internal/common"
	"github.com/hmori/flashcards/internal/server/auth"
)

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	s := NewUserService(nil, newFakeRepoManager())

	user, err := s.Register(context.Background(), " Mori ", "Mori@Example.com", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "Mori", user.Name)
	assert.Equal(t, "mori@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "secret1"))
}

func TestRegister_DuplicateEmailIsFieldError(t *testing.T) {
	t.Parallel()

	s := NewUserService(nil, newFakeRepoManager())
	ctx := context.Background()

	_, err := s.Register(ctx, "Mori", "mori@example.com", "secret1")
	require.NoError(t, err)

	// Same address with different casing must still collide.
	_, err = s.Register(ctx, "Other", "MORI@example.com", "secret2")
	require.Error(t, err)

	var fieldErrors common.FieldErrors
	require.True(t, errors.As(err, &fieldErrors))
	assert.Equal(t, []string{"The email has already been taken."}, fieldErrors["email"])
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	s := NewUserService(nil, newFakeRepoManager())
	ctx := context.Background()

	registered, err := s.Register(ctx, "Mori", "mori@example.com", "secret1")
	require.NoError(t, err)

	user, err := s.Authenticate(ctx, "mori@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
}

func TestAuthenticate_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	s := NewUserService(nil, newFakeRepoManager())
	ctx := context.Background()

	_, err := s.Register(ctx, "Mori", "mori@example.com", "secret1")
	require.NoError(t, err)

	_, wrongPassword := s.Authenticate(ctx, "mori@example.com", "wrong")
	_, unknownEmail := s.Authenticate(ctx, "nobody@example.com", "secret1")

	// Both failure modes collapse to the same error so the response cannot
	// reveal whether the account exists.
	assert.True(t, errors.Is(wrongPassword, common.ErrUnauthorized))
	assert.True(t, errors.Is(unknownEmail, common.ErrUnauthorized))
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	t.Parallel()

	s := NewUserService(nil, newFakeRepoManager())
	ctx := context.Background()

	user, err := s.Register(ctx, "Mori", "mori@example.com", "secret1")
	require.NoError(t, err)

	name := "Hanako"
	updated, err := s.UpdateProfile(ctx, user.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hanako", updated.Name)
	assert.Equal(t, "mori@example.com", updated.Email)
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	t.Parallel()

	s := NewUserService(nil, newFakeRepoManager())
	ctx := context.Background()

	_, err := s.Register(ctx, "Mori", "mori@example.com", "secret1")
	require.NoError(t, err)
	other, err := s.Register(ctx, "Hanako", "hanako@example.com", "secret2")
	require.NoError(t, err)

	taken := "mori@example.com"
	_, err = s.UpdateProfile(ctx, other.ID, nil, &taken)
	require.Error(t, err)

	var fieldErrors common.FieldErrors
	require.True(t, errors.As(err, &fieldErrors))
	assert.Contains(t, fieldErrors, "email")
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "mori@example.com", NormalizeEmail("  Mori@Example.COM  "))
}
