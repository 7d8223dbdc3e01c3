package config

import "os"

// parseEnv overlays Config with environment variables. The remote folder
// name in particular is env-configurable, matching the original deployment
// model of a per-environment setting.
func parseEnv(cfg *Config) {
	envString(&cfg.ClientID, "JRNL_CLIENT_ID")
	envString(&cfg.ClientSecret, "JRNL_CLIENT_SECRET")
	envString(&cfg.FolderName, "JRNL_FOLDER_NAME")
	envString(&cfg.DatabasePath, "JRNL_DATABASE_PATH")
	envString(&cfg.RemoteBackend, "JRNL_REMOTE_BACKEND")
	envString(&cfg.S3Bucket, "JRNL_S3_BUCKET")
	envString(&cfg.S3Region, "JRNL_S3_REGION")
	envString(&cfg.S3BaseEndpoint, "JRNL_S3_BASE_ENDPOINT")
	envString(&cfg.S3AccessKey, "JRNL_S3_ACCESS_KEY")
	envString(&cfg.S3SecretKey, "JRNL_S3_SECRET_KEY")
}

func envString(dst *string, name string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}
