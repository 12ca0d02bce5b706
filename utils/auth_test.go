package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	JwtKey = []byte("unit-test-key")

	token, err := GenerateJWT(42, "user@example.com", RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, RoleUser, claims.Role)
	assert.Greater(t, claims.ExpiresAt, claims.IssuedAt)
}

func TestParseJWTRejectsBadInput(t *testing.T) {
	JwtKey = []byte("unit-test-key")

	_, err := ParseJWT("not.a.token")
	assert.Error(t, err)

	token, err := GenerateJWT(1, "admin", RoleAdmin)
	require.NoError(t, err)

	JwtKey = []byte("a-different-key")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}
