package config

import (
	"strings"
	"time"
)

// AppConfig is the main application configuration struct.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library; a local .env file is honored in
// development. See the individual sections for available variables.
type AppConfig struct {
	// IsDev controls development mode behavior (verbose logging).
	IsDev bool `env:"DEV" envDefault:"false"`

	// API is the REST backend configuration.
	API APIConfig

	// Upload is the direct-to-object-storage upload configuration.
	Upload UploadConfig
}

// APIConfig contains REST backend configuration.
type APIConfig struct {
	// BaseURL is the deployment's API base URL (e.g. "https://catalog.example.com").
	// A trailing "/api" segment is appended during Sanitize when missing, so both
	// "https://host" and "https://host/api" are accepted.
	BaseURL string `env:"CATALOG_API_BASE_URL" envDefault:"http://localhost:8000"`

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `env:"CATALOG_HTTP_TIMEOUT" envDefault:"30s"`

	// TokenPath overrides the location of the persisted token file.
	// Empty means the platform user config dir (e.g. ~/.config/catadm/token.json).
	TokenPath string `env:"CATALOG_TOKEN_PATH" envDefault:""`
}

// UploadConfig contains image upload configuration.
type UploadConfig struct {
	// Folder is the object-storage folder presigned uploads are placed under.
	Folder string `env:"CATALOG_UPLOAD_FOLDER" envDefault:"uploads"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Upload.Sanitize()
}

// Sanitize normalizes the API base URL and clamps the timeout.
func (a *APIConfig) Sanitize() {
	a.BaseURL = NormalizeBaseURL(a.BaseURL)
	if a.Timeout <= 0 {
		a.Timeout = 30 * time.Second
	}
}

// Sanitize trims the upload folder and falls back to the default when empty.
func (u *UploadConfig) Sanitize() {
	u.Folder = strings.Trim(strings.TrimSpace(u.Folder), "/")
	if u.Folder == "" {
		u.Folder = "uploads"
	}
}

// NormalizeBaseURL strips trailing slashes and ensures the URL ends with "/api",
// which is where the backend mounts every endpoint this client consumes.
func NormalizeBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return base
	}
	if strings.HasSuffix(base, "/api") {
		return base
	}
	return base + "/api"
}
