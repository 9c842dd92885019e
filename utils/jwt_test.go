package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractToken(t *testing.T) {
	token, err := GenerateToken("user-1", "+15550001", time.Hour)
	require.NoError(t, err)

	id, err := ExtractIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "+15550001", claims.Phone)
}

func TestExtractIDFromExpiredToken(t *testing.T) {
	token, err := GenerateToken("user-1", "+15550001", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractIDFromToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractIDFromGarbage(t *testing.T) {
	_, err := ExtractIDFromToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractIDWithoutSubject(t *testing.T) {
	token, err := GenerateToken("", "+15550001", time.Hour)
	require.NoError(t, err)

	_, err = ExtractIDFromToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
