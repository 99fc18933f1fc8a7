package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingEnv wraps every missing required environment variable so the run
// aborts before any network activity.
var ErrMissingEnv = errors.New("missing required environment variable")

type Config struct {
	LogStore LogStoreConfig
	Export   ExportConfig
	Upload   UploadConfig
}

type LogStoreConfig struct {
	URL      string
	Username string
	Password string
	Table    string
	Timeout  time.Duration
}

type ExportConfig struct {
	// Prefix names the archive: <Prefix>-<YYYY-MM-DD>.jsonl.gz.
	Prefix string
	TmpDir string

	// NoiseApp, when non-empty, excludes rows whose embedded application
	// name matches this value.
	NoiseApp string

	// SkipEmpty exits successfully without uploading when the query
	// returns no rows.
	SkipEmpty bool
}

type UploadConfig struct {
	Backend string
	Drive   DriveConfig
	S3      S3Config
}

type DriveConfig struct {
	FolderID           string
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountJSON string
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

func Load() (Config, error) {
	var missing []string
	require := func(key string) string {
		value := os.Getenv(key)
		if value == "" {
			missing = append(missing, key)
		}
		return value
	}

	cfg := Config{
		LogStore: LogStoreConfig{
			URL:      require("LOGSTORE_URL"),
			Username: require("LOGSTORE_USER"),
			Password: require("LOGSTORE_PASSWORD"),
			Table:    require("LOGSTORE_TABLE"),
			Timeout:  envDuration("LOGSTORE_TIMEOUT", 5*time.Minute),
		},
		Export: ExportConfig{
			Prefix:    env("ARCHIVE_PREFIX", "logs"),
			TmpDir:    env("EXPORT_TMP_DIR", os.TempDir()),
			NoiseApp:  env("NOISE_APP", ""),
			SkipEmpty: envBool("SKIP_EMPTY", true),
		},
		Upload: UploadConfig{
			Backend: env("UPLOAD_BACKEND", "drive"),
		},
	}

	switch cfg.Upload.Backend {
	case "drive":
		cfg.Upload.Drive = DriveConfig{
			FolderID:           require("DRIVE_FOLDER_ID"),
			ClientID:           env("DRIVE_CLIENT_ID", ""),
			ClientSecret:       env("DRIVE_CLIENT_SECRET", ""),
			RefreshToken:       env("DRIVE_REFRESH_TOKEN", ""),
			ServiceAccountJSON: env("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		}
	case "s3":
		cfg.Upload.S3 = S3Config{
			Endpoint:  require("S3_ENDPOINT"),
			AccessKey: require("S3_ACCESS_KEY"),
			SecretKey: require("S3_SECRET_KEY"),
			Bucket:    require("S3_BUCKET"),
			Prefix:    env("S3_PREFIX", ""),
			UseSSL:    envBool("S3_USE_SSL", true),
		}
	default:
		return Config{}, fmt.Errorf("unsupported UPLOAD_BACKEND: %s", cfg.Upload.Backend)
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return cfg, nil
}

func env(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	return value
}

func envBool(key string, fallback bool) bool {
	value := env(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	value := env(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
