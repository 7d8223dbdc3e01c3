// Package common contains shared constants and sentinel errors used across
// jrnl components.
package common

const (
	// DataFileName is the fixed name of the remote collection file.
	DataFileName = "journal-entries.json"

	// DefaultFolderName is the drive folder that holds the collection file
	// unless overridden via configuration.
	DefaultFolderName = "jrnl-data"

	// FolderMimeType marks a folder in the drive API.
	FolderMimeType = "application/vnd.google-apps.folder"
)
