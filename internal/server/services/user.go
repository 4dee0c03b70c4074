// Package services contains the server-side business logic sitting between
// the HTTP layer and the repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hmori/flashcards/internal/common"
	"github.com/hmori/flashcards/internal/server/auth"
	"github.com/hmori/flashcards/internal/server/models"
	"github.com/hmori/flashcards/internal/server/repositories/repomanager"
)

// UserService provides account operations: registration, credential
// verification, profile reads/updates and the admin-only listing.
type UserService struct {
	db    *sql.DB
	repos repomanager.RepositoryManager
}

// NewUserService constructs a UserService over the shared DB handle.
func NewUserService(db *sql.DB, repos repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repos: repos}
}

// Register hashes the password and creates the user. Email uniqueness is
// enforced by the database constraint; a duplicate surfaces as a field error
// on "email", the same shape validation failures use.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
	}

	created, err := s.repos.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.FieldErrors{"email": {"The email has already been taken."}}
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// Authenticate verifies an email/password pair. The caller learns only that
// the pair was rejected, never whether the email exists; the bcrypt compare
// runs against a throwaway hash when it does not, to keep timing flat.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repos.Users(s.db).GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}

// FindByID returns the user or common.ErrNotFound.
func (s *UserService) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repos.Users(s.db).GetByID(ctx, id)
}

// UpdateProfile mutates only the supplied fields of the user's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, name, email *string) (*models.User, error) {
	repo := s.repos.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		user.Name = strings.TrimSpace(*name)
	}
	if email != nil {
		user.Email = NormalizeEmail(*email)
	}

	updated, err := repo.Update(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.FieldErrors{"email": {"The email has already been taken."}}
		}
		return nil, err
	}
	return updated, nil
}

// List returns all users ordered by id. Callers must gate this behind the
// admin check.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repos.Users(s.db).List(ctx)
}

// NormalizeEmail lower-cases and trims an email so uniqueness is
// case-insensitive regardless of database collation.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
