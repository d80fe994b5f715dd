package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"lendloop-backend/internal/security"
)

const testSecret = "test-secret-that-is-long-enough-0"

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	tm := security.NewTokenManager(testSecret, 15*time.Minute, time.Hour)

	t.Run("Access token round trip", func(t *testing.T) {
		token, err := tm.GenerateAccessToken("user-1", "user@test.com")
		assert.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "user@test.com", claims.Email)
		assert.Equal(t, security.TokenTypeAccess, claims.Type)
	})

	t.Run("Refresh token carries its type", func(t *testing.T) {
		token, err := tm.GenerateRefreshToken("user-1", "user@test.com")
		assert.NoError(t, err)

		claims, err := tm.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, security.TokenTypeRefresh, claims.Type)
	})

	t.Run("Wrong secret is rejected", func(t *testing.T) {
		token, err := tm.GenerateAccessToken("user-1", "user@test.com")
		assert.NoError(t, err)

		other := security.NewTokenManager("another-secret-that-is-long-enough", 15*time.Minute, time.Hour)
		_, err = other.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		expired := security.NewTokenManager(testSecret, -time.Minute, time.Hour)
		token, err := expired.GenerateAccessToken("user-1", "user@test.com")
		assert.NoError(t, err)

		_, err = expired.ValidateToken(token)
		assert.ErrorIs(t, err, security.ErrExpiredToken)
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		_, err := tm.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})
}
