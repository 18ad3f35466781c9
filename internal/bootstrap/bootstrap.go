// Package bootstrap wires configuration, logging, and the client stack
// (token store, REST adapter, session manager, catalog controller, uploader)
// into a ready-to-use application object.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/brickstash/catadm/config"
	"github.com/brickstash/catadm/internal/adapters/restapi"
	"github.com/brickstash/catadm/internal/adapters/tokenfile"
	"github.com/brickstash/catadm/internal/catalog"
	"github.com/brickstash/catadm/internal/session"
	"github.com/brickstash/catadm/internal/upload"
)

// InitLogger initializes the structured logger. Development mode lowers the
// level to debug.
func InitLogger(isDev bool) *slog.Logger {
	level := slog.LevelInfo
	if isDev {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// App bundles the wired client stack.
type App struct {
	Config   config.AppConfig
	Logger   *slog.Logger
	Tokens   *tokenfile.Store
	API      *restapi.Client
	Session  *session.Manager
	Catalog  *catalog.Controller
	Uploader *upload.Uploader
}

// NewApp wires the full stack from configuration. The token store path falls
// back to the platform user config directory when not configured.
func NewApp(cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	tokenPath := cfg.API.TokenPath
	if tokenPath == "" {
		var err error
		tokenPath, err = tokenfile.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve token path: %w", err)
		}
	}
	tokens, err := tokenfile.NewStore(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}

	api := restapi.NewClient(restapi.ClientOptions{
		BaseURL: cfg.API.BaseURL,
		Tokens:  tokens.TokenSource(),
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})

	return &App{
		Config: cfg,
		Logger: logger,
		Tokens: tokens,
		API:    api,
		Session: session.NewManager(session.ManagerOptions{
			Tokens: tokens,
			Auth:   api,
			Logger: logger,
		}),
		Catalog: catalog.NewController(catalog.ControllerOptions{
			API:    api,
			Logger: logger,
		}),
		Uploader: upload.NewUploader(upload.UploaderOptions{
			Presigner: api,
			Folder:    cfg.Upload.Folder,
			Logger:    logger,
		}),
	}, nil
}
