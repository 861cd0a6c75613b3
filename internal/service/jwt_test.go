package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret", 15*time.Minute)

	token, err := GenerateJWT(42, "session-abc")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, sessionID, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "session-abc", sessionID)
}

func TestJWTRejectsGarbage(t *testing.T) {
	InitJWT("test-secret", 15*time.Minute)

	_, _, err := ParseJWT("not-a-token")
	assert.Error(t, err)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("secret-one", 15*time.Minute)
	token, err := GenerateJWT(1, "s")
	require.NoError(t, err)

	InitJWT("secret-two", 15*time.Minute)
	_, _, err = ParseJWT(token)
	assert.Error(t, err)
}

func TestJWTRejectsExpired(t *testing.T) {
	InitJWT("test-secret", time.Nanosecond)
	token, err := GenerateJWT(1, "s")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, _, err = ParseJWT(token)
	assert.Error(t, err)
}
