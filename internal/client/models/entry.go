// Package models defines journal entry and session types.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRating = errors.New("rating must be between 0 and 5")

// Reflection holds the three free-text review fields of an entry.
type Reflection struct {
	DidWell      string `json:"didWell"`
	CouldImprove string `json:"couldImprove"`
	Learned      string `json:"learned"`
}

// Entry is one immutable journal record. Once persisted no field is ever
// mutated; deleting an entry rewrites the stored collection without it.
type Entry struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Participant string     `json:"participant"`
	Date        time.Time  `json:"date"`
	Context     string     `json:"context"`
	Rating      int        `json:"rating"`
	Reflection  Reflection `json:"reflection"`
	Tags        []string   `json:"tags"`
	ContentHTML string     `json:"contentHtml,omitempty"`
}

// Draft carries the user-provided fields of a new entry before an id and
// creation timestamp are assigned.
type Draft struct {
	Title       string
	Participant string
	Context     string
	Rating      int
	Reflection  Reflection
	Tags        []string
	ContentHTML string
}

func (d Draft) Validate() error {
	if d.Rating < 0 || d.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// NewEntry materializes a draft into an Entry with a fresh id and the given
// creation timestamp. The id is never reassigned afterwards.
func NewEntry(d Draft, now time.Time) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Title:       d.Title,
		Participant: d.Participant,
		Date:        now.UTC(),
		Context:     d.Context,
		Rating:      d.Rating,
		Reflection:  d.Reflection,
		Tags:        d.Tags,
		ContentHTML: d.ContentHTML,
	}
}

// SortByDateDesc orders entries newest first. Storage order is insertion
// order; this ordering is applied at presentation time.
func SortByDateDesc(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}

// MarshalEntries encodes the collection as the pretty-printed JSON array
// stored in the remote collection file. A nil list encodes as [].
func MarshalEntries(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// ParseEntries decodes a collection document back into an entry list.
func ParseEntries(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse entries: %w", err)
	}
	return entries, nil
}
