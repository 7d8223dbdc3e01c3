package services

import "errors"

var (
	// ErrSavedNotSynced is returned when an entry was written to local
	// storage but the remote write failed. The entry is kept and will be
	// pushed on the next successful remote operation.
	ErrSavedNotSynced = errors.New("entry saved locally but not synced")
)
