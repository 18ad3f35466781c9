package bootstrap

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickstash/catadm/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "uploads", cfg.Upload.Folder)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_API_BASE_URL", "https://catalog.example.com/")
	t.Setenv("CATALOG_HTTP_TIMEOUT", "5s")
	t.Setenv("CATALOG_UPLOAD_FOLDER", "/images/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://catalog.example.com/api", cfg.API.BaseURL, "base URL is normalized")
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "images", cfg.Upload.Folder)
}

func TestNewApp_WiresStack(t *testing.T) {
	cfg := config.AppConfig{}
	cfg.API.BaseURL = "https://catalog.example.com/api"
	cfg.API.Timeout = 10 * time.Second
	cfg.API.TokenPath = filepath.Join(t.TempDir(), "token.json")
	cfg.Upload.Folder = "uploads"

	app, err := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	assert.NotNil(t, app.Tokens)
	assert.NotNil(t, app.API)
	assert.NotNil(t, app.Session)
	assert.NotNil(t, app.Catalog)
	assert.NotNil(t, app.Uploader)
	assert.Equal(t, cfg.API.TokenPath, app.Tokens.Path())
}
