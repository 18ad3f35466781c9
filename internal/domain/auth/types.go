package auth

// Package auth contains domain-level types for the client-side session.
// It is pure and free of transport/adapter concerns.

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Status is the session lifecycle state.
// Valid values are defined as constants below.
type Status string

const (
	// StatusUninitialized is the state before Initialize has run.
	StatusUninitialized Status = "uninitialized"
	// StatusLoading means an identity check is in flight.
	StatusLoading Status = "loading"
	// StatusAuthenticated means a token was accepted and a profile is present.
	StatusAuthenticated Status = "authenticated"
	// StatusAnonymous means no valid session exists.
	StatusAnonymous Status = "anonymous"
)

// TokenPair is the access/refresh token pair issued by the backend.
// Both tokens are opaque to the client and are persisted and cleared together,
// never independently.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Empty reports whether no access token is present.
func (p TokenPair) Empty() bool { return p.Access == "" }

// Profile is the authenticated user's identity as returned by the backend.
// It is re-fetched on every session resolution and never cached across runs.
type Profile struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

// IsAdmin reports whether the profile carries either admin role flag.
func (p Profile) IsAdmin() bool { return p.IsStaff || p.IsSuperuser }

// GateDecision is the outcome of checking a protected view against the session.
type GateDecision string

const (
	// GatePending means the session is still resolving; render a neutral state.
	GatePending GateDecision = "pending"
	// GateRedirectToLogin means no authenticated session exists.
	GateRedirectToLogin GateDecision = "redirect_to_login"
	// GateForbidden means the session is authenticated but lacks the admin role.
	GateForbidden GateDecision = "forbidden"
	// GateAllowed means the view may be shown.
	GateAllowed GateDecision = "allowed"
)

// TokenExpiry extracts the expiry claim from a JWT access token without
// validating the signature. The backend remains the sole authority on token
// validity; this is display metadata only.
func TokenExpiry(raw string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
