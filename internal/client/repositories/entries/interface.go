package entries

import (
	"context"

	"github.com/dmitrijs2005/jrnl/internal/client/models"
)

// Repository is the local persistence fallback for journal entries. It is
// used while signed out and serves as the migration source on first sign-in.
type Repository interface {
	// ReplaceAll rewrites the stored collection with the given list.
	// Tombstoned ids survive the rewrite.
	ReplaceAll(ctx context.Context, entries []models.Entry) error

	// GetAll returns stored entries that are not tombstoned, newest first.
	GetAll(ctx context.Context) ([]models.Entry, error)

	// MarkDeleted tombstones an entry id. Tombstones are used while no
	// remote delete endpoint is available and are dropped by Clear.
	MarkDeleted(ctx context.Context, id string) error

	// TombstonedIDs returns ids deleted locally while signed out.
	TombstonedIDs(ctx context.Context) ([]string, error)

	// Clear removes all stored entries and tombstones, e.g. after a
	// successful migration to remote storage.
	Clear(ctx context.Context) error
}
