package entries

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/jrnl/internal/client/models"
	"github.com/dmitrijs2005/jrnl/internal/dbx"
)

// createdAtFormat is fixed width, unlike RFC3339Nano which trims trailing
// zeros, so the lexical ORDER BY on created_at matches chronological order
// across mixed sub-second precision.
const createdAtFormat = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
// Entries are stored as JSON documents, one row per entry, with a deleted
// flag acting as the local tombstone.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll rewrites all non-tombstoned rows with the given list.
// A tombstoned id stays tombstoned even if the list still carries the entry.
// Callers that need atomicity should run this inside dbx.WithTx.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, entries []models.Entry) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE deleted=0`); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}

	query := `INSERT INTO entries (id, payload, created_at, deleted) VALUES (?, ?, ?, 0)
		ON CONFLICT(id) DO NOTHING`
	for _, e := range entries {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to encode entry %s: %w", e.ID, err)
		}
		if _, err := r.db.ExecContext(ctx, query, e.ID, payload, e.Date.UTC().Format(createdAtFormat)); err != nil {
			return fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
		}
	}
	return nil
}

// GetAll lists all non-tombstoned entries, newest first.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT payload FROM entries WHERE deleted=0 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []models.Entry
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var e models.Entry
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("failed to decode entry: %w", err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkDeleted tombstones an id. The row is created if the entry was never
// stored locally, so the tombstone survives a later ReplaceAll.
func (r *SQLiteRepository) MarkDeleted(ctx context.Context, id string) error {
	query := `INSERT INTO entries (id, payload, created_at, deleted) VALUES (?, 'null', '', 1)
		ON CONFLICT(id) DO UPDATE SET deleted=1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to tombstone entry %s: %w", id, err)
	}
	return nil
}

// TombstonedIDs returns ids deleted locally.
func (r *SQLiteRepository) TombstonedIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM entries WHERE deleted=1`)
	if err != nil {
		return nil, fmt.Errorf("failed to select tombstones: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Clear removes all rows, tombstones included.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	return nil
}
