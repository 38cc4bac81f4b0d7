package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService("test-secret", 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("", time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestTokenService(t)

	accessToken, refreshToken, err := svc.GenerateTokenPair("user-1", "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	accessClaims, err := svc.ValidateToken(accessToken)
	require.NoError(t, err)
	refreshClaims, err := svc.ValidateToken(refreshToken)
	require.NoError(t, err)

	assert.Equal(t, "user-1", accessClaims.UserID)
	assert.Equal(t, "user@example.com", accessClaims.Email)
	assert.Equal(t, TokenTypeAccess, accessClaims.TokenType)
	assert.Equal(t, TokenTypeRefresh, refreshClaims.TokenType)

	// Each token in a pair must carry its own identifier
	assert.NotEmpty(t, accessClaims.ID)
	assert.NotEmpty(t, refreshClaims.ID)
	assert.NotEqual(t, accessClaims.ID, refreshClaims.ID)

	// Refresh lives longer than access
	assert.True(t, refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newTestTokenService(t)
	other, err := NewTokenService("another-secret", time.Minute, time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("user-1", "user@example.com")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc, err := NewTokenService("test-secret", -time.Minute, -time.Minute)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken("user-1", "user@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Malformed(t *testing.T) {
	svc := newTestTokenService(t)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = svc.ValidateToken("")
	assert.Error(t, err)
}
