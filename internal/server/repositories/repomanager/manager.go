package repomanager

import (
	"context"
	"database/sql"

	"github.com/hmori/flashcards/internal/dbx"
	"github.com/hmori/flashcards/internal/server/repositories/cards"
	"github.com/hmori/flashcards/internal/server/repositories/sessions"
	"github.com/hmori/flashcards/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Cards(db dbx.DBTX) cards.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}
