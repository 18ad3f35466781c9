// Package tokenfile persists the session token pair as a JSON file under the
// user's config dir, with permissions restricted to the owner.
package tokenfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"

	domainauth "github.com/brickstash/catadm/internal/domain/auth"
	apperrors "github.com/brickstash/catadm/internal/errors"
)

// tokenFile is the on-disk shape. ExpiresAt is display metadata parsed from
// the access token's claims; the backend remains the authority on validity.
type tokenFile struct {
	Access    string     `json:"access_token"`
	Refresh   string     `json:"refresh_token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Store reads and writes the token pair at a fixed path. Both tokens live in
// the same file so they are always cleared together.
type Store struct {
	path string
}

// NewStore creates a Store at the given path. An empty path selects the
// platform default (see DefaultPath).
func NewStore(path string) (*Store, error) {
	if path == "" {
		def, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = def
	}
	return &Store{path: path}, nil
}

// DefaultPath returns the default token file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "catadm", "token.json"), nil
}

// Path returns the file location tokens are persisted at.
func (s *Store) Path() string { return s.path }

// Load returns the stored token pair. A missing or unreadable file yields a
// zero pair with no error: the session treats that as "not signed in".
func (s *Store) Load() (domainauth.TokenPair, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domainauth.TokenPair{}, nil
		}
		return domainauth.TokenPair{}, fmt.Errorf("read token file: %w", err)
	}

	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		// A corrupt token file is indistinguishable from no session.
		return domainauth.TokenPair{}, nil
	}
	return domainauth.TokenPair{Access: tf.Access, Refresh: tf.Refresh}, nil
}

// Save persists both tokens, creating the parent directory when needed.
func (s *Store) Save(pair domainauth.TokenPair) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	tf := tokenFile{Access: pair.Access, Refresh: pair.Refresh}
	if exp, ok := domainauth.TokenExpiry(pair.Access); ok {
		tf.ExpiresAt = &exp
	}

	b, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

// Clear removes the token file. Clearing an already-cleared store is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// TokenSource returns an oauth2.TokenSource that reads the current access
// token from disk on every call, so each outgoing request picks up the token
// present at send time.
func (s *Store) TokenSource() oauth2.TokenSource {
	return &storeTokenSource{store: s}
}

type storeTokenSource struct {
	store *Store
}

// Token implements oauth2.TokenSource.
func (ts *storeTokenSource) Token() (*oauth2.Token, error) {
	pair, err := ts.store.Load()
	if err != nil {
		return nil, err
	}
	if pair.Empty() {
		return nil, apperrors.Auth("Not signed in. Run login first.")
	}
	return &oauth2.Token{
		AccessToken:  pair.Access,
		RefreshToken: pair.Refresh,
		TokenType:    "Bearer",
	}, nil
}
