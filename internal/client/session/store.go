// Package session persists and restores the signed-in session across runs.
//
// The identity, access credential, and expiry timestamp live in the local
// metadata table. An expired or malformed persisted session is treated as
// absence, never as a fatal error: restore fails open to signed-out.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/jrnl/internal/client/models"
	"github.com/dmitrijs2005/jrnl/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/jrnl/internal/dbx"
)

// DefaultTTL keeps the credential slightly under the provider's one-hour
// token lifetime.
const DefaultTTL = 55 * time.Minute

const (
	keyUser      = "session.user"
	keyToken     = "session.access_token"
	keyExpiresAt = "session.expires_at"
)

// Store holds the current identity and access credential in durable local
// storage and expires them after a fixed time to live.
type Store struct {
	db  *sql.DB
	ttl time.Duration

	// now is a test seam for the clock.
	now func() time.Time
}

// NewStore returns a session store with the given TTL. A non-positive TTL
// falls back to DefaultTTL.
func NewStore(db *sql.DB, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{db: db, ttl: ttl, now: time.Now}
}

func (s *Store) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

// Persist writes identity, credential, and expiresAt = now + TTL in a
// single transaction. The session's ExpiresAt field is updated in place.
func (s *Store) Persist(ctx context.Context, sess *models.Session) error {
	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}

	expiresAt := s.now().Add(s.ttl)
	sess.ExpiresAt = expiresAt

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyUser, rawUser); err != nil {
			return err
		}
		if err := repo.Set(ctx, keyToken, []byte(sess.AccessToken)); err != nil {
			return err
		}
		millis := strconv.FormatInt(expiresAt.UnixMilli(), 10)
		return repo.Set(ctx, keyExpiresAt, []byte(millis))
	})
}

// Restore reads the persisted session. Absence, malformed data, or an
// expiry in the past all read as (nil, nil); storage is cleared in the
// latter two cases so the next restore starts clean.
func (s *Store) Restore(ctx context.Context) (*models.Session, error) {
	repo := s.repo()

	rawUser, err := repo.Get(ctx, keyUser)
	if err != nil {
		return nil, err
	}
	rawToken, err := repo.Get(ctx, keyToken)
	if err != nil {
		return nil, err
	}
	rawExpiresAt, err := repo.Get(ctx, keyExpiresAt)
	if err != nil {
		return nil, err
	}

	if rawUser == nil || rawToken == nil || rawExpiresAt == nil {
		return nil, nil
	}

	millis, err := strconv.ParseInt(string(rawExpiresAt), 10, 64)
	if err != nil {
		return nil, s.Clear(ctx)
	}

	sess := &models.Session{
		AccessToken: string(rawToken),
		ExpiresAt:   time.UnixMilli(millis),
	}
	if err := json.Unmarshal(rawUser, &sess.User); err != nil {
		return nil, s.Clear(ctx)
	}

	if sess.IsExpired(s.now()) {
		return nil, s.Clear(ctx)
	}
	return sess, nil
}

// Clear removes all persisted session fields.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, key := range []string{keyUser, keyToken, keyExpiresAt} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}
