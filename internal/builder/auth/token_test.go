package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	manager := NewJWTManager("test_secret", time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateToken(userID, "editor@acme.test", "acme")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "editor@acme.test", claims.Email)
	assert.Equal(t, "acme", claims.CompanySlug)
}

func TestGenerateTokenEmptySecret(t *testing.T) {
	manager := NewJWTManager("", time.Hour)

	_, err := manager.GenerateToken(uuid.New(), "editor@acme.test", "acme")
	assert.Error(t, err)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := NewJWTManager("secret_a", time.Hour).GenerateToken(uuid.New(), "editor@acme.test", "acme")
	require.NoError(t, err)

	_, err = NewJWTManager("secret_b", time.Hour).ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenExpired(t *testing.T) {
	manager := NewJWTManager("test_secret", time.Hour)
	manager.ttl = -time.Minute

	token, err := manager.GenerateToken(uuid.New(), "editor@acme.test", "acme")
	require.NoError(t, err)

	_, err = manager.ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	manager := NewJWTManager("test_secret", time.Hour)

	_, err := manager.ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestDefaultTTL(t *testing.T) {
	manager := NewJWTManager("test_secret", 0)
	assert.Equal(t, 24*time.Hour, manager.ttl)
}

func TestIdentityFromClaims(t *testing.T) {
	manager := NewJWTManager("test_secret", time.Hour)
	userID := uuid.New()

	token, err := manager.GenerateToken(userID, "editor@acme.test", "acme")
	require.NoError(t, err)
	claims, err := manager.ParseToken(token)
	require.NoError(t, err)

	identity, err := IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, "editor@acme.test", identity.Email)
	assert.Equal(t, "acme", identity.CompanySlug)
}

func TestIdentityFromClaimsBadSubject(t *testing.T) {
	claims := &Claims{Email: "editor@acme.test", CompanySlug: "acme"}
	claims.Subject = "not-a-uuid"

	_, err := IdentityFromClaims(claims)
	assert.Error(t, err)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
	assert.False(t, CheckPassword("not-a-hash", "hunter2"))
}
