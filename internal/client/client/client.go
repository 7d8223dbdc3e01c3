// Package client contains the remote collection stores and local database
// bootstrap for the jrnl client.
package client

import (
	"context"

	"github.com/dmitrijs2005/jrnl/internal/client/models"
)

// RemoteStore maps the in-memory entry collection onto a single remote
// document scoped to the authenticated user. Writes are always
// full-document replacements, never partial patches. Implementations
// perform their sub-steps strictly sequentially; callers see either full
// success or a rejected operation.
type RemoteStore interface {
	// SaveEntries replaces the remote collection with the given list.
	SaveEntries(ctx context.Context, entries []models.Entry) error

	// LoadEntries fetches and parses the remote collection. An absent
	// collection file is the expected first-run state and yields an
	// empty list, not an error.
	LoadEntries(ctx context.Context) ([]models.Entry, error)

	// DeleteAllData removes the remote collection file. Absence of the
	// file is a silent no-op success.
	DeleteAllData(ctx context.Context) error
}
