package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "patient", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, role, err := ExtractClaimsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
	assert.Equal(t, "patient", role)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "patient", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractClaimsFromToken(token)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken("user-1", time.Hour)
	require.NoError(t, err)

	subject, err := ExtractIDFromRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := GenerateToken("user-1", "admin", time.Hour)
	require.NoError(t, err)

	_, _, err = ExtractClaimsFromToken(token + "x")
	assert.Error(t, err)
}

func TestHashTokenDeterministic(t *testing.T) {
	a := HashToken("some-token")
	b := HashToken("some-token")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, HashToken("other-token"))
}
