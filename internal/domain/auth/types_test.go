package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_IsAdmin(t *testing.T) {
	t.Parallel()

	assert.True(t, Profile{IsStaff: true}.IsAdmin())
	assert.True(t, Profile{IsSuperuser: true}.IsAdmin())
	assert.False(t, Profile{}.IsAdmin())
}

func TestTokenPair_Empty(t *testing.T) {
	t.Parallel()

	assert.True(t, TokenPair{}.Empty())
	assert.False(t, TokenPair{Access: "a"}.Empty())
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	raw, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)

	got, ok := TokenExpiry(raw)
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	_, ok = TokenExpiry("not-a-jwt")
	assert.False(t, ok)
}
