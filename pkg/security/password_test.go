package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Secreto123")
	require.NoError(t, err)
	assert.True(t, IsBcryptHash(hash))
	assert.True(t, strings.Contains(hash, "$10$"))

	ok, err := VerifyPassword("Secreto123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("otra-clave", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	require.Error(t, err)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("whatever", "not-a-bcrypt-hash")
	require.Error(t, err)
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("misma")
	require.NoError(t, err)
	h2, err := HashPassword("misma")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
