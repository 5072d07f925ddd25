package config

import (
	"os"
	"time"
)

// Backend selectors for STORE_BACKEND.
const (
	BackendFile   = "file"
	BackendGitHub = "github"
)

// Config holds the application configuration.
type Config struct {
	Port         string
	AdminToken   string
	StoreBackend string
	DataDir      string
	StoreTimeout time.Duration

	GitHubToken  string
	GitHubOwner  string
	GitHubRepo   string
	GitHubBranch string
	GitHubDir    string
}

// Load reads the configuration from environment variables, falling back
// to defaults suitable for local development.
func Load() *Config {
	cfg := &Config{
		Port:         envOr("PORT", "5000"),
		AdminToken:   envOr("ADMIN_TOKEN", "noft-admin"),
		StoreBackend: envOr("STORE_BACKEND", BackendFile),
		DataDir:      envOr("DATA_DIR", "data"),
		StoreTimeout: 10 * time.Second,

		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		GitHubOwner:  os.Getenv("GITHUB_OWNER"),
		GitHubRepo:   os.Getenv("GITHUB_REPO"),
		GitHubBranch: envOr("GITHUB_BRANCH", "main"),
		GitHubDir:    os.Getenv("GITHUB_DIR"),
	}

	if v := os.Getenv("STORE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.StoreTimeout = d
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
