package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hishabkhata/hishab/internal/domain"
	"github.com/hishabkhata/hishab/internal/remote"
)

// Config carries all environment-driven settings for the CLI and the dev
// server. Nothing here is ambient: callers pass it down explicitly.
type Config struct {
	// APIBaseURL is the remote tracker backend the sync engine talks to.
	APIBaseURL string
	// APIToken is the optional bearer token attached to API requests.
	APIToken string
	// DataDir is where the durable local ledger lives.
	DataDir string
	// Currency is the default currency for new transactions.
	Currency string

	// Port is the dev server listen port.
	Port string
	// ServerToken, when set, makes the dev server require that exact
	// bearer token.
	ServerToken string
	// UploadDir is where the dev server stores uploaded attachments when
	// no GCS bucket is configured.
	UploadDir string
	// GCSBucket, when set, switches dev server attachment storage to GCS.
	GCSBucket string
	// PublicBaseURL is the URL prefix for locally stored attachments.
	PublicBaseURL string
}

// Load reads configuration from the environment, loading a .env file first
// if one is present. Every setting has a workable default.
func Load() Config {
	_ = godotenv.Load()

	dataDir := getEnv("HISHAB_DATA_DIR", defaultDataDir())
	port := getEnv("PORT", "8000")

	return Config{
		APIBaseURL:    getEnv("HISHAB_API_URL", remote.DefaultBaseURL),
		APIToken:      getEnv("HISHAB_API_TOKEN", ""),
		DataDir:       dataDir,
		Currency:      getEnv("HISHAB_CURRENCY", domain.DefaultCurrency),
		Port:          port,
		ServerToken:   getEnv("HISHAB_SERVER_TOKEN", ""),
		UploadDir:     getEnv("HISHAB_UPLOAD_DIR", filepath.Join(dataDir, "uploads")),
		GCSBucket:     getEnv("HISHAB_GCS_BUCKET", ""),
		PublicBaseURL: getEnv("HISHAB_PUBLIC_URL", "http://127.0.0.1:"+port),
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hishab"
	}
	return filepath.Join(home, ".hishab")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
