package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/jrnl/internal/flagx"
	"github.com/dmitrijs2005/jrnl/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "55m"
// or as integer nanoseconds. Only non-zero values overlay the runtime Config.
type JsonConfig struct {
	ClientID            string         `json:"client_id"`
	ClientSecret        string         `json:"client_secret"`
	FolderName          string         `json:"folder_name"`
	DatabasePath        string         `json:"database_path"`
	RemoteBackend       string         `json:"remote_backend"`
	SessionTTL          timex.Duration `json:"session_ttl"`
	ExpiryCheckInterval timex.Duration `json:"expiry_check_interval"`
	S3Bucket            string         `json:"s3_bucket"`
	S3Region            string         `json:"s3_region"`
	S3BaseEndpoint      string         `json:"s3_base_endpoint"`
	S3AccessKey         string         `json:"s3_access_key"`
	S3SecretKey         string         `json:"s3_secret_key"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when neither is set nothing is
// loaded. Read or unmarshal errors panic; the intended usage is
// defaults -> parseJson -> parseEnv -> parseFlags, later stages override
// earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlayString(&cfg.ClientID, jc.ClientID)
	overlayString(&cfg.ClientSecret, jc.ClientSecret)
	overlayString(&cfg.FolderName, jc.FolderName)
	overlayString(&cfg.DatabasePath, jc.DatabasePath)
	overlayString(&cfg.RemoteBackend, jc.RemoteBackend)
	overlayString(&cfg.S3Bucket, jc.S3Bucket)
	overlayString(&cfg.S3Region, jc.S3Region)
	overlayString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	overlayString(&cfg.S3AccessKey, jc.S3AccessKey)
	overlayString(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.SessionTTL.Duration > 0 {
		cfg.SessionTTL = time.Duration(jc.SessionTTL.Duration)
	}
	if jc.ExpiryCheckInterval.Duration > 0 {
		cfg.ExpiryCheckInterval = time.Duration(jc.ExpiryCheckInterval.Duration)
	}
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
