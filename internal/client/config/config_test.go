package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "jrnl-data", cfg.FolderName)
	assert.Equal(t, "jrnl.db", cfg.DatabasePath)
	assert.Equal(t, "drive", cfg.RemoteBackend)
	assert.Equal(t, 55*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.ExpiryCheckInterval)
	assert.NotEmpty(t, cfg.AuthEndpoint)
	assert.NotEmpty(t, cfg.ProfileEndpoint)
	assert.NotEmpty(t, cfg.DriveAPIBase)
}

func TestParseEnv_Overlay(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	t.Setenv("JRNL_FOLDER_NAME", "my-journal")
	t.Setenv("JRNL_REMOTE_BACKEND", "s3")
	t.Setenv("JRNL_S3_BUCKET", "bucket1")
	t.Setenv("JRNL_CLIENT_ID", "cid")

	parseEnv(cfg)

	assert.Equal(t, "my-journal", cfg.FolderName)
	assert.Equal(t, "s3", cfg.RemoteBackend)
	assert.Equal(t, "bucket1", cfg.S3Bucket)
	assert.Equal(t, "cid", cfg.ClientID)
	// untouched values keep their defaults
	assert.Equal(t, "jrnl.db", cfg.DatabasePath)
}

func TestParseEnv_EmptyValueDoesNotOverride(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	t.Setenv("JRNL_FOLDER_NAME", "")
	parseEnv(cfg)

	assert.Equal(t, "jrnl-data", cfg.FolderName)
}

func TestParseJson_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")

	jc := map[string]any{
		"client_id":             "cid-json",
		"folder_name":           "json-folder",
		"session_ttl":           "30m",
		"expiry_check_interval": "1m",
	}
	data, err := json.Marshal(jc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"jrnl", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "cid-json", cfg.ClientID)
	assert.Equal(t, "json-folder", cfg.FolderName)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, time.Minute, cfg.ExpiryCheckInterval)
}

func TestParseFlags_Overlay(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"jrnl", "-f", "flag-folder", "-b", "s3"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "flag-folder", cfg.FolderName)
	assert.Equal(t, "s3", cfg.RemoteBackend)
	assert.Equal(t, "jrnl.db", cfg.DatabasePath)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	// env sets the folder, flags override it
	t.Setenv("JRNL_FOLDER_NAME", "env-folder")
	os.Args = []string{"jrnl", "-f", "flag-folder"}

	cfg := LoadConfig()
	assert.Equal(t, "flag-folder", cfg.FolderName)
}
