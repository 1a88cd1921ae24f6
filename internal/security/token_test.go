package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerTokenRoundTrip(t *testing.T) {
	token, err := GenerateOwnerToken("secret", "owner-1", "a@b.io", time.Hour)
	require.NoError(t, err)

	claims, err := ParseOwnerToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", claims.OwnerID)
	assert.Equal(t, "a@b.io", claims.Email)
	assert.Equal(t, "owner-1", claims.Subject)
}

func TestOwnerTokenWrongSecret(t *testing.T) {
	token, err := GenerateOwnerToken("secret", "owner-1", "a@b.io", time.Hour)
	require.NoError(t, err)

	_, err = ParseOwnerToken(token, "other-secret")
	assert.Error(t, err)
}

func TestOwnerTokenExpired(t *testing.T) {
	token, err := GenerateOwnerToken("secret", "owner-1", "a@b.io", -time.Minute)
	require.NoError(t, err)

	_, err = ParseOwnerToken(token, "secret")
	assert.Error(t, err)
}

func TestOwnerTokenGarbage(t *testing.T) {
	_, err := ParseOwnerToken("not.a.jwt", "secret")
	assert.Error(t, err)
}
