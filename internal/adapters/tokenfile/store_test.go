package tokenfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/brickstash/catadm/internal/domain/auth"
	apperrors "github.com/brickstash/catadm/internal/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "token.json"))
	require.NoError(t, err)
	return store
}

func TestStore_LoadMissingFile(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	pair, err := store.Load()
	require.NoError(t, err)
	assert.True(t, pair.Empty())
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	want := domainauth.TokenPair{Access: "access-token", Refresh: "refresh-token"}
	require.NoError(t, store.Save(want))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	require.NoError(t, store.Save(domainauth.TokenPair{Access: "a", Refresh: "r"}))
	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())

	pair, err := store.Load()
	require.NoError(t, err)
	assert.True(t, pair.Empty())
}

func TestStore_LoadCorruptFileActsAsSignedOut(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o700))
	require.NoError(t, os.WriteFile(store.Path(), []byte("not json"), 0o600))

	pair, err := store.Load()
	require.NoError(t, err)
	assert.True(t, pair.Empty())
}

func TestTokenSource_ReadsCurrentTokenPerCall(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	src := store.TokenSource()

	require.NoError(t, store.Save(domainauth.TokenPair{Access: "first", Refresh: "r1"}))
	tok, err := src.Token()
	require.NoError(t, err)
	assert.Equal(t, "first", tok.AccessToken)

	// Rotating the stored pair is visible on the next call.
	require.NoError(t, store.Save(domainauth.TokenPair{Access: "second", Refresh: "r2"}))
	tok, err = src.Token()
	require.NoError(t, err)
	assert.Equal(t, "second", tok.AccessToken)
}

func TestTokenSource_NoTokenFailsAsAuth(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	_, err := store.TokenSource().Token()
	require.Error(t, err)
	assert.True(t, apperrors.IsAuth(err))
}
