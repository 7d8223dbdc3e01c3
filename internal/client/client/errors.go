package client

import "errors"

var (
	ErrFolderAccess = errors.New("failed to access storage folder")
	ErrSaveFailed   = errors.New("failed to save entries")
	ErrLoadFailed   = errors.New("failed to load entries")
	ErrDeleteFailed = errors.New("failed to delete journal data")
)
