package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Sunny day")
	require.NoError(t, err)

	ok, err := VerifyPassword("Sunny day", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("sunny day", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHashesAreSalted(t *testing.T) {
	first, err := HashPassword("Sunny")
	require.NoError(t, err)
	second, err := HashPassword("Sunny")
	require.NoError(t, err)

	assert.NotEqual(t, string(first), string(second))

	ok, err := VerifyPassword("Sunny", first)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = VerifyPassword("Sunny", second)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	for _, hash := range []string{
		"",
		"not-a-hash",
		"$argon2i$v=19$t=3,m=65536,p=2$c2FsdA==$aGFzaA==",
		"$argon2id$v=18$t=3,m=65536,p=2$c2FsdA==$aGFzaA==",
		"$argon2id$v=19$t=3,m=65536,p=2$!!!$aGFzaA==",
	} {
		_, err := VerifyPassword("Sunny", []byte(hash))
		assert.Error(t, err, "hash %q", hash)
	}
}
