// Package ports defines interfaces (hexagonal ports) for the client's
// transport and persistence behavior. Implementations live in
// internal/adapters; orchestration in internal/session and internal/catalog.
package ports

import (
	"context"

	domainauth "github.com/brickstash/catadm/internal/domain/auth"
	"github.com/brickstash/catadm/internal/domain/catalog"
	"github.com/brickstash/catadm/internal/domain/model"
)

// TokenStore persists the access/refresh token pair in client-local storage.
// The pair is saved and cleared as a unit, never one token independently.
type TokenStore interface {
	// Load returns the stored pair; a zero pair with nil error means no
	// session is stored.
	Load() (domainauth.TokenPair, error)
	Save(pair domainauth.TokenPair) error
	Clear() error
}

// SignupInput groups parameters for account registration.
type SignupInput struct {
	Username string
	Email    string
	Password string
}

// AuthAPI exchanges credentials for tokens and resolves the current identity.
type AuthAPI interface {
	// Login exchanges credentials for a token pair. Invalid credentials
	// surface as an auth error.
	Login(ctx context.Context, username, password string) (domainauth.TokenPair, error)

	// Me performs the identity check: it exchanges the stored bearer token for
	// the current user's profile, validating the token as a side effect.
	Me(ctx context.Context) (domainauth.Profile, error)

	// Signup registers a new account. It does not establish a session.
	Signup(ctx context.Context, in SignupInput) error
}

// CatalogAPI performs REST operations against one resource kind's endpoints.
// Payloads are kind-specific record values or raw JSON; the backend is the
// authority on accepted fields.
type CatalogAPI interface {
	List(ctx context.Context, kind catalog.Kind) ([]catalog.Record, error)
	Get(ctx context.Context, kind catalog.Kind, id int64) (catalog.Record, error)
	Create(ctx context.Context, kind catalog.Kind, payload any) (catalog.Record, error)
	Update(ctx context.Context, kind catalog.Kind, id int64, payload any) (catalog.Record, error)
	Delete(ctx context.Context, kind catalog.Kind, id int64) error
}

// PresignInput groups parameters for requesting an upload ticket.
type PresignInput struct {
	Folder      string
	Filename    string
	ContentType string
}

// Presigner obtains single-use direct-to-storage upload tickets from the backend.
type Presigner interface {
	PresignUpload(ctx context.Context, in PresignInput) (model.UploadTicket, error)
}
