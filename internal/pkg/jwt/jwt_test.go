package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewJWTService("test-secret-key-for-jwt", "1h", "24h", "5m")
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_InvalidDuration(t *testing.T) {
	_, err := NewJWTService("secret", "forever", "24h", "5m")
	assert.ErrorContains(t, err, "access token expiration")
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestService(t)

	token, expiresAt, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	tokenType, _ := decoded.Get("type")
	assert.Equal(t, TokenTypeAccess, tokenType)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, _, err := svc.GenerateRefreshToken("admin")
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", userID)

	_, err = svc.ValidateSSEToken(token)
	assert.Error(t, err, "refresh token is not an sse token")
}

func TestSSETokenRoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, expiresIn, err := svc.GenerateSSEToken("admin")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	userID, err := svc.ValidateSSEToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", userID)

	access, _, err := svc.GenerateAccessToken("admin")
	require.NoError(t, err)
	_, err = svc.ValidateSSEToken(access)
	assert.Error(t, err)
}

func TestValidate_WrongSecret(t *testing.T) {
	svc := newTestService(t)
	other, err := NewJWTService("another-secret", "1h", "24h", "5m")
	require.NoError(t, err)

	token, _, err := other.GenerateSSEToken("admin")
	require.NoError(t, err)

	_, err = svc.ValidateSSEToken(token)
	assert.Error(t, err)
	_, err = svc.ValidateSSEToken("not-a-jwt")
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService(t)
	cookie := svc.RefreshTokenCookie("tok", 1700000000)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int64(1700000000), cookie.Expires.Unix())
}
