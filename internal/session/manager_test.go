package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/brickstash/catadm/internal/domain/auth"
	apperrors "github.com/brickstash/catadm/internal/errors"
	"github.com/brickstash/catadm/internal/mocks"
	"github.com/brickstash/catadm/internal/ports"
)

// newManager creates mock dependencies and a manager for testing.
func newManager(t *testing.T) (*mocks.MockTokenStore, *mocks.MockAuthAPI, *Manager) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	tokens := mocks.NewMockTokenStore(ctrl)
	authAPI := mocks.NewMockAuthAPI(ctrl)

	manager := NewManager(ManagerOptions{Tokens: tokens, Auth: authAPI})
	return tokens, authAPI, manager
}

func TestManager_StartsUninitialized(t *testing.T) {
	t.Parallel()
	_, _, manager := newManager(t)

	assert.Equal(t, domainauth.StatusUninitialized, manager.Status())
	assert.Equal(t, domainauth.GatePending, manager.Gate(false))
}

func TestManager_Initialize_NoStoredToken(t *testing.T) {
	t.Parallel()
	tokens, _, manager := newManager(t)

	// No identity check may go out; the auth mock has no expectations.
	tokens.EXPECT().Load().Return(domainauth.TokenPair{}, nil)

	status := manager.Initialize(context.Background())

	assert.Equal(t, domainauth.StatusAnonymous, status)
	_, ok := manager.CurrentUser()
	assert.False(t, ok)
}

func TestManager_Initialize_ValidToken(t *testing.T) {
	t.Parallel()
	tokens, authAPI, manager := newManager(t)

	tokens.EXPECT().Load().Return(domainauth.TokenPair{Access: "stored", Refresh: "r"}, nil)
	authAPI.EXPECT().Me(gomock.Any()).Return(domainauth.Profile{
		ID:          1,
		Username:    "amy",
		IsStaff:     true,
		IsSuperuser: false,
	}, nil)

	status := manager.Initialize(context.Background())

	assert.Equal(t, domainauth.StatusAuthenticated, status)
	user, ok := manager.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "amy", user.Username)
	assert.True(t, manager.IsAdmin())
}

func TestManager_Initialize_RejectedTokenClearsBoth(t *testing.T) {
	t.Parallel()
	tokens, authAPI, manager := newManager(t)

	tokens.EXPECT().Load().Return(domainauth.TokenPair{Access: "stale", Refresh: "r"}, nil)
	authAPI.EXPECT().Me(gomock.Any()).Return(domainauth.Profile{}, apperrors.Auth("token rejected"))
	tokens.EXPECT().Clear().Return(nil)

	status := manager.Initialize(context.Background())

	assert.Equal(t, domainauth.StatusAnonymous, status)
	_, ok := manager.CurrentUser()
	assert.False(t, ok)
}

func TestManager_Initialize_NetworkFailureFailsClosed(t *testing.T) {
	t.Parallel()
	tokens, authAPI, manager := newManager(t)

	tokens.EXPECT().Load().Return(domainauth.TokenPair{Access: "stored", Refresh: "r"}, nil)
	authAPI.EXPECT().Me(gomock.Any()).Return(domainauth.Profile{}, apperrors.Network("connection refused"))
	tokens.EXPECT().Clear().Return(nil)

	assert.Equal(t, domainauth.StatusAnonymous, manager.Initialize(context.Background()))
}

func TestManager_Login_RefetchesProfile(t *testing.T) {
	t.Parallel()
	tokens, authAPI, manager := newManager(t)

	pair := domainauth.TokenPair{Access: "fresh", Refresh: "fresh-r"}
	authAPI.EXPECT().Login(gomock.Any(), "amy", "secret").Return(pair, nil)
	tokens.EXPECT().Save(pair).Return(nil)
	// Login never trusts inline user data; the profile comes from /me/.
	tokens.EXPECT().Load().Return(pair, nil)
	authAPI.EXPECT().Me(gomock.Any()).Return(domainauth.Profile{ID: 1, Username: "amy", IsStaff: true}, nil)

	require.NoError(t, manager.Login(context.Background(), "amy", "secret"))
	assert.Equal(t, domainauth.StatusAuthenticated, manager.Status())
}

func TestManager_Login_InvalidCredentials(t *testing.T) {
	t.Parallel()
	_, authAPI, manager := newManager(t)

	authAPI.EXPECT().Login(gomock.Any(), "amy", "wrong").
		Return(domainauth.TokenPair{}, apperrors.Auth("No active account found with the given credentials"))

	err := manager.Login(context.Background(), "amy", "wrong")
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))
	assert.Equal(t, domainauth.StatusUninitialized, manager.Status())
}

func TestManager_SignOut_ThenInitialize(t *testing.T) {
	t.Parallel()
	tokens, authAPI, manager := newManager(t)

	tokens.EXPECT().Load().Return(domainauth.TokenPair{Access: "stored"}, nil)
	authAPI.EXPECT().Me(gomock.Any()).Return(domainauth.Profile{ID: 1, Username: "amy"}, nil)
	require.Equal(t, domainauth.StatusAuthenticated, manager.Initialize(context.Background()))

	tokens.EXPECT().Clear().Return(nil)
	manager.SignOut()

	assert.Equal(t, domainauth.StatusAnonymous, manager.Status())
	_, ok := manager.CurrentUser()
	assert.False(t, ok)

	// Initialize after sign-out resolves anonymous without an identity check.
	tokens.EXPECT().Load().Return(domainauth.TokenPair{}, nil)
	assert.Equal(t, domainauth.StatusAnonymous, manager.Initialize(context.Background()))
}

func TestManager_SignOut_Idempotent(t *testing.T) {
	t.Parallel()
	tokens, _, manager := newManager(t)

	tokens.EXPECT().Clear().Return(nil).Times(2)
	manager.SignOut()
	manager.SignOut()

	assert.Equal(t, domainauth.StatusAnonymous, manager.Status())
}

func TestManager_Gate(t *testing.T) {
	t.Parallel()
	tokens, authAPI, manager := newManager(t)

	// Uninitialized renders a neutral pending state.
	assert.Equal(t, domainauth.GatePending, manager.Gate(true))

	tokens.EXPECT().Load().Return(domainauth.TokenPair{Access: "stored"}, nil)
	authAPI.EXPECT().Me(gomock.Any()).Return(domainauth.Profile{ID: 2, Username: "guest"}, nil)
	manager.Initialize(context.Background())

	// Authenticated non-admin: allowed through the auth gate, forbidden by the admin gate.
	assert.Equal(t, domainauth.GateAllowed, manager.Gate(false))
	assert.Equal(t, domainauth.GateForbidden, manager.Gate(true))

	tokens.EXPECT().Clear().Return(nil)
	manager.SignOut()
	assert.Equal(t, domainauth.GateRedirectToLogin, manager.Gate(false))
}

func TestManager_Signup_DoesNotTouchSession(t *testing.T) {
	t.Parallel()
	_, authAPI, manager := newManager(t)

	in := ports.SignupInput{Username: "newbie", Email: "n@example.com", Password: "pw"}
	authAPI.EXPECT().Signup(gomock.Any(), in).Return(nil)

	require.NoError(t, manager.Signup(context.Background(), in))
	assert.Equal(t, domainauth.StatusUninitialized, manager.Status())
}
