package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("unit-test-secret-0123456789abcdefghij", time.Hour)

	token, err := manager.GenerateToken(42, "farmer@test.com", []string{"farmer", "provider"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "farmer@test.com", claims.Email)
	assert.Equal(t, []string{"farmer", "provider"}, claims.Roles)
	assert.Equal(t, "agrirent", claims.Issuer)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	manager := NewTokenManager("unit-test-secret-0123456789abcdefghij", time.Hour)
	other := NewTokenManager("different-secret-0123456789abcdefghij", time.Hour)

	token, err := manager.GenerateToken(1, "x@test.com", nil)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	manager := NewTokenManager("unit-test-secret-0123456789abcdefghij", -time.Minute)

	token, err := manager.GenerateToken(1, "x@test.com", nil)
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	manager := NewTokenManager("unit-test-secret-0123456789abcdefghij", time.Hour)
	_, err := manager.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
