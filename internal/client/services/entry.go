package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/jrnl/internal/client/client"
	"github.com/dmitrijs2005/jrnl/internal/client/models"
	"github.com/dmitrijs2005/jrnl/internal/client/repositories/entries"
	"github.com/dmitrijs2005/jrnl/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/jrnl/internal/common"
	"github.com/dmitrijs2005/jrnl/internal/dbx"
	"github.com/dmitrijs2005/jrnl/internal/logging"
)

// legacyEntriesKey is the metadata key older client versions used to store
// the whole collection as one JSON blob. LoadLocal migrates it into the
// entries table on first read.
const legacyEntriesKey = "journal-entries"

// EntryService defines journal entry operations. The storage strategy is
// fixed at construction: with a remote store the service keeps the local
// database as a cache and mirrors every write to the remote document;
// without one it works against the local database alone.
type EntryService interface {
	// Save creates an immutable entry from the draft and persists the
	// updated collection. A failed remote write returns the created entry
	// together with ErrSavedNotSynced; the local copy stands.
	Save(ctx context.Context, d models.Draft) (*models.Entry, error)

	// List returns all entries, newest first.
	List(ctx context.Context) ([]models.Entry, error)

	// Get returns the entry with the given id, or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.Entry, error)

	// Search returns entries matching all given criteria: a
	// case-insensitive text query across title, participant, context,
	// reflections and tags; a tag filter (any of the given tags);
	// and an exact rating. Zero values disable the respective filter.
	Search(ctx context.Context, query string, tags []string, rating int) ([]models.Entry, error)

	// Delete removes the entry with the given id. Unknown ids are a no-op.
	Delete(ctx context.Context, id string) error

	// DeleteAllData removes the whole collection from the active backend.
	DeleteAllData(ctx context.Context) error

	// LoadOnAuth loads the collection after a successful sign-in and runs
	// the one-shot migration of pre-sign-in local entries when the remote
	// collection is still empty.
	LoadOnAuth(ctx context.Context) ([]models.Entry, error)

	// LoadLocal loads the collection from local storage, migrating the
	// legacy single-blob format when present.
	LoadLocal(ctx context.Context) ([]models.Entry, error)

	// Insights aggregates statistics over the current collection.
	Insights(ctx context.Context) (*Insights, error)
}

type entryService struct {
	db      *sql.DB
	local   entries.Repository
	meta    metadata.Repository
	remote  client.RemoteStore
	log     logging.Logger
	nowFunc func() time.Time
}

// NewEntryService constructs an EntryService over the local database.
// A nil remote selects the local-only strategy.
func NewEntryService(db *sql.DB, remote client.RemoteStore, log logging.Logger) EntryService {
	return &entryService{
		db:      db,
		local:   entries.NewSQLiteRepository(db),
		meta:    metadata.NewSQLiteRepository(db),
		remote:  remote,
		log:     log,
		nowFunc: time.Now,
	}
}

func (s *entryService) Save(ctx context.Context, d models.Draft) (*models.Entry, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	entry := models.NewEntry(d, s.nowFunc())

	all, err := s.local.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	all = append([]models.Entry{entry}, all...)
	models.SortByDateDesc(all)

	if err := s.replaceLocal(ctx, all); err != nil {
		return nil, err
	}

	if s.remote != nil {
		if err := s.remote.SaveEntries(ctx, all); err != nil {
			s.log.Warn(ctx, "remote save failed, entry kept locally", "id", entry.ID, "error", err)
			return &entry, ErrSavedNotSynced
		}
	}

	return &entry, nil
}

func (s *entryService) List(ctx context.Context) ([]models.Entry, error) {
	return s.local.GetAll(ctx)
}

func (s *entryService) Get(ctx context.Context, id string) (*models.Entry, error) {
	all, err := s.local.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("%w: entry %s", common.ErrorNotFound, id)
}

func (s *entryService) Search(ctx context.Context, query string, tags []string, rating int) ([]models.Entry, error) {
	all, err := s.local.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" && len(tags) == 0 && rating == 0 {
		return all, nil
	}

	var result []models.Entry
	for _, e := range all {
		if q != "" && !entryMatchesText(e, q) {
			continue
		}
		if rating != 0 && e.Rating != rating {
			continue
		}
		if len(tags) > 0 && !entryHasAnyTag(e, tags) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func entryHasAnyTag(e models.Entry, tags []string) bool {
	for _, want := range tags {
		for _, have := range e.Tags {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}

func entryMatchesText(e models.Entry, q string) bool {
	fields := []string{
		e.Title,
		e.Participant,
		e.Context,
		e.Reflection.DidWell,
		e.Reflection.CouldImprove,
		e.Reflection.Learned,
	}
	fields = append(fields, e.Tags...)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func (s *entryService) Delete(ctx context.Context, id string) error {
	if err := s.local.MarkDeleted(ctx, id); err != nil {
		return err
	}

	if s.remote != nil {
		all, err := s.local.GetAll(ctx)
		if err != nil {
			return err
		}
		if err := s.remote.SaveEntries(ctx, all); err != nil {
			s.log.Warn(ctx, "remote delete not synced", "id", id, "error", err)
			return ErrSavedNotSynced
		}
	}
	return nil
}

func (s *entryService) DeleteAllData(ctx context.Context) error {
	if s.remote != nil {
		if err := s.remote.DeleteAllData(ctx); err != nil {
			return err
		}
	}
	return s.clearLocal(ctx)
}

// LoadOnAuth reconciles local and remote state after sign-in:
//
//   - remote unreachable: fall back to the local cache, log a warning;
//   - remote empty, local non-empty: push the local collection up once;
//     the local rows stay and double as the synced-mode cache, and a later
//     non-empty remote short-circuits any repeat migration;
//   - remote non-empty: it is authoritative, refresh the local cache.
//
// On a local-strategy service (no remote configured) it degrades to
// LoadLocal.
func (s *entryService) LoadOnAuth(ctx context.Context) ([]models.Entry, error) {
	if s.remote == nil {
		return s.LoadLocal(ctx)
	}

	remote, err := s.remote.LoadEntries(ctx)
	if err != nil {
		s.log.Warn(ctx, "remote load failed, using local entries", "error", err)
		return s.LoadLocal(ctx)
	}

	local, err := s.LoadLocal(ctx)
	if err != nil {
		return nil, err
	}

	if len(remote) == 0 && len(local) > 0 {
		if err := s.remote.SaveEntries(ctx, local); err != nil {
			s.log.Warn(ctx, "migration of local entries failed, will retry on next sign-in", "count", len(local), "error", err)
			return local, nil
		}
		s.log.Info(ctx, "migrated local entries to remote storage", "count", len(local))
		return local, nil
	}

	models.SortByDateDesc(remote)
	if err := s.replaceLocal(ctx, remote); err != nil {
		return nil, err
	}
	return s.local.GetAll(ctx)
}

func (s *entryService) LoadLocal(ctx context.Context) ([]models.Entry, error) {
	all, err := s.local.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(all) > 0 {
		return all, nil
	}

	// Older versions stored the collection as one blob under a metadata
	// key. Move it into the entries table on first read.
	blob, err := s.meta.Get(ctx, legacyEntriesKey)
	if err != nil || len(blob) == 0 {
		return all, err
	}

	legacy, err := models.ParseEntries(blob)
	if err != nil {
		s.log.Warn(ctx, "discarding unreadable legacy entry blob", "error", err)
		return all, s.meta.Delete(ctx, legacyEntriesKey)
	}

	models.SortByDateDesc(legacy)
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := entries.NewSQLiteRepository(tx).ReplaceAll(ctx, legacy); err != nil {
			return err
		}
		return metadata.NewSQLiteRepository(tx).Delete(ctx, legacyEntriesKey)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "migrated legacy entry blob", "count", len(legacy))
	return s.local.GetAll(ctx)
}

func (s *entryService) Insights(ctx context.Context) (*Insights, error) {
	all, err := s.local.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeInsights(all, s.nowFunc()), nil
}

func (s *entryService) replaceLocal(ctx context.Context, all []models.Entry) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return entries.NewSQLiteRepository(tx).ReplaceAll(ctx, all)
	})
}

func (s *entryService) clearLocal(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return entries.NewSQLiteRepository(tx).Clear(ctx)
	})
}
