package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateAccessToken("user1", "asha@example.com")
	require.NoError(t, err)

	claims, err := ParseToken(token, ScopeOwner)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, ScopeOwner, claims.Scope)
}

func TestPortalTokenScopeIsEnforced(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GeneratePortalToken("tenant1")
	require.NoError(t, err)

	// A portal token never passes as a landlord token, and vice versa.
	_, err = ParseToken(token, ScopeOwner)
	assert.Error(t, err)

	claims, err := ParseToken(token, ScopeTenant)
	require.NoError(t, err)
	assert.Equal(t, "tenant1", claims.UserID)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateAccessToken("user1", "asha@example.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "different-secret")
	_, err = ParseToken(token, ScopeOwner)
	assert.Error(t, err)
}

func TestGenerateRefreshTokenIsOpaqueAndUnique(t *testing.T) {
	a, err := GenerateRefreshToken()
	require.NoError(t, err)
	b, err := GenerateRefreshToken()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword("s3cret-pass", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "0123456789abcdef0123456789abcdef")

	ciphertext, err := Encrypt([]byte(`[{"id":"u1"}]`))
	require.NoError(t, err)
	assert.NotContains(t, ciphertext, "u1")

	plaintext, err := Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"u1"}]`, string(plaintext))
}

func TestEncryptRequiresKey(t *testing.T) {
	t.Setenv("DATA_ENCRYPTION_KEY", "short")
	_, err := Encrypt([]byte("data"))
	assert.Error(t, err)
}
