package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpiresWithin(t *testing.T) {
	window := 30 * time.Second

	t.Run("token expiring inside the window", func(t *testing.T) {
		token := signedToken(t, time.Now().Add(10*time.Second))
		assert.True(t, tokenExpiresWithin(token, window))
	})

	t.Run("already expired token", func(t *testing.T) {
		token := signedToken(t, time.Now().Add(-time.Minute))
		assert.True(t, tokenExpiresWithin(token, window))
	})

	t.Run("token with plenty of time left", func(t *testing.T) {
		token := signedToken(t, time.Now().Add(time.Hour))
		assert.False(t, tokenExpiresWithin(token, window))
	})

	t.Run("token without exp claim", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		assert.False(t, tokenExpiresWithin(signed, window))
	})

	t.Run("opaque token", func(t *testing.T) {
		assert.False(t, tokenExpiresWithin("not-a-jwt", window))
	})

	t.Run("empty token", func(t *testing.T) {
		assert.False(t, tokenExpiresWithin("", window))
	})
}
