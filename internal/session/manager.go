// Package session owns the client-side authentication session: establishing
// it, verifying it against the backend, tearing it down, and gating views.
package session

import (
	"context"
	"io"
	"log/slog"
	"sync"

	domainauth "github.com/brickstash/catadm/internal/domain/auth"
	apperrors "github.com/brickstash/catadm/internal/errors"
	"github.com/brickstash/catadm/internal/ports"
)

// ManagerOptions groups dependencies for Manager.
type ManagerOptions struct {
	Tokens ports.TokenStore
	Auth   ports.AuthAPI
	Logger *slog.Logger
}

// Manager resolves and tracks the session lifecycle:
//
//	uninitialized → loading → {authenticated | anonymous}
//
// authenticated → anonymous happens via SignOut or a failed re-validation;
// anonymous → authenticated via a successful Login. Token expiry is never
// detected proactively: a rejected request on a later call is what downgrades
// the session, by the caller invoking Initialize again.
type Manager struct {
	tokens ports.TokenStore
	auth   ports.AuthAPI
	logger *slog.Logger

	mu     sync.Mutex
	status domainauth.Status
	user   *domainauth.Profile
}

// NewManager constructs a Manager in the uninitialized state.
func NewManager(opts ManagerOptions) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		tokens: opts.Tokens,
		auth:   opts.Auth,
		logger: logger,
		status: domainauth.StatusUninitialized,
	}
}

// Initialize resolves whether a valid session exists and returns the
// resulting status. With no stored access token it settles on anonymous
// without any network call. Otherwise it performs one identity check; any
// failure (network, rejection, malformed response) clears both stored
// tokens and settles on anonymous. A rejected token never surfaces as an
// error: it is the expected "not logged in" path.
func (m *Manager) Initialize(ctx context.Context) domainauth.Status {
	pair, err := m.tokens.Load()
	if err != nil {
		// Fail closed: an unreadable store is treated as no session.
		m.logger.Warn("token store read failed", "error", err)
		return m.settleAnonymous(false)
	}
	if pair.Empty() {
		return m.settleAnonymous(false)
	}

	m.setStatus(domainauth.StatusLoading)

	profile, err := m.auth.Me(ctx)
	if err != nil {
		m.logger.Info("identity check failed, clearing session", "error", err)
		return m.settleAnonymous(true)
	}

	m.mu.Lock()
	m.status = domainauth.StatusAuthenticated
	m.user = &profile
	m.mu.Unlock()
	return domainauth.StatusAuthenticated
}

// Login exchanges credentials for a token pair, persists it, and re-resolves
// the session with a fresh identity check rather than trusting any user data
// the login response may carry. Invalid credentials surface as an auth error.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	pair, err := m.auth.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if err := m.tokens.Save(pair); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeServer, "Saving the session failed.")
	}

	if status := m.Initialize(ctx); status != domainauth.StatusAuthenticated {
		return apperrors.Auth("Signed in, but the session could not be verified. Please try again.")
	}
	return nil
}

// Signup registers a new account. It does not establish a session; callers
// log in afterwards.
func (m *Manager) Signup(ctx context.Context, in ports.SignupInput) error {
	return m.auth.Signup(ctx, in)
}

// SignOut clears both tokens and the current user synchronously. It is
// idempotent and performs no network call.
func (m *Manager) SignOut() {
	if err := m.tokens.Clear(); err != nil {
		m.logger.Warn("clearing tokens failed", "error", err)
	}
	m.mu.Lock()
	m.status = domainauth.StatusAnonymous
	m.user = nil
	m.mu.Unlock()
}

// Status returns the current session status.
func (m *Manager) Status() domainauth.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// CurrentUser returns the resolved profile, if any.
func (m *Manager) CurrentUser() (domainauth.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return domainauth.Profile{}, false
	}
	return *m.user, true
}

// IsAdmin reports whether the session belongs to a staff or superuser account.
func (m *Manager) IsAdmin() bool {
	user, ok := m.CurrentUser()
	return ok && user.IsAdmin()
}

// Gate decides whether a protected view may be shown. While the session is
// still resolving it returns Pending, so callers render a neutral state
// instead of flashing unauthorized content.
func (m *Manager) Gate(requireAdmin bool) domainauth.GateDecision {
	m.mu.Lock()
	status := m.status
	user := m.user
	m.mu.Unlock()

	switch status {
	case domainauth.StatusUninitialized, domainauth.StatusLoading:
		return domainauth.GatePending
	case domainauth.StatusAuthenticated:
		if requireAdmin && (user == nil || !user.IsAdmin()) {
			return domainauth.GateForbidden
		}
		return domainauth.GateAllowed
	default:
		return domainauth.GateRedirectToLogin
	}
}

func (m *Manager) setStatus(status domainauth.Status) {
	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}

// settleAnonymous moves the session to anonymous, optionally wiping stored
// tokens (always both together, never one alone).
func (m *Manager) settleAnonymous(clearTokens bool) domainauth.Status {
	if clearTokens {
		if err := m.tokens.Clear(); err != nil {
			m.logger.Warn("clearing tokens failed", "error", err)
		}
	}
	m.mu.Lock()
	m.status = domainauth.StatusAnonymous
	m.user = nil
	m.mu.Unlock()
	return domainauth.StatusAnonymous
}
