// Package config handles configuration for the jrnl client, including
// defaults, JSON overlay, environment variables, and command-line flags.
package config

import (
	"time"

	"github.com/dmitrijs2005/jrnl/internal/common"
)

// Config holds runtime settings for the jrnl CLI.
//
// Fields:
//   - ClientID / ClientSecret: OAuth client credentials.
//   - AuthEndpoint / TokenEndpoint / ProfileEndpoint: identity provider URLs.
//   - DriveAPIBase / DriveUploadBase: drive REST endpoints.
//   - FolderName: remote folder holding the collection file.
//   - DatabasePath: local SQLite database file.
//   - RemoteBackend: "drive" or "s3".
//   - SessionTTL: access credential lifetime (55m keeps a margin under
//     the provider's one-hour token).
//   - ExpiryCheckInterval: how often the expiry watcher re-checks the
//     stored session.
type Config struct {
	ClientID        string
	ClientSecret    string
	AuthEndpoint    string
	TokenEndpoint   string
	ProfileEndpoint string

	DriveAPIBase    string
	DriveUploadBase string
	FolderName      string

	DatabasePath  string
	RemoteBackend string

	SessionTTL          time.Duration
	ExpiryCheckInterval time.Duration

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.AuthEndpoint = "https://accounts.google.com/o/oauth2/auth"
	c.TokenEndpoint = "https://oauth2.googleapis.com/token"
	c.ProfileEndpoint = "https://www.googleapis.com/oauth2/v2/userinfo"
	c.DriveAPIBase = "https://www.googleapis.com/drive/v3"
	c.DriveUploadBase = "https://www.googleapis.com/upload/drive/v3"
	c.FolderName = common.DefaultFolderName
	c.DatabasePath = "jrnl.db"
	c.RemoteBackend = "drive"
	c.SessionTTL = 55 * time.Minute
	c.ExpiryCheckInterval = 5 * time.Minute
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), environment variables, and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
