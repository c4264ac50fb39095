package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("user-1", "ADMIN", "secret", time.Minute)
	require.NoError(t, err)

	claims, err := Parse(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestRefreshTokenType(t *testing.T) {
	token, err := NewRefreshToken("user-1", "MEMBER", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := Parse(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	token, err := NewAccessToken("user-1", "MEMBER", "secret", time.Minute)
	require.NoError(t, err)

	_, err = Parse(token, "other")
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	token, err := NewAccessToken("user-1", "MEMBER", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = Parse(token, "secret")
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := NewPasswordHasher(HasherBcrypt, DefaultBcryptCost)

	hash, err := h.Hash("password")
	require.NoError(t, err)
	assert.NotEqual(t, "password", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$06$"), "expected bcrypt cost 6, got %s", hash)

	ok, err := h.Compare("password", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare("wrong", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasherComparesEitherAlgorithm(t *testing.T) {
	argon := NewPasswordHasher(HasherArgon2id, 0)
	bc := NewPasswordHasher(HasherBcrypt, DefaultBcryptCost)

	argonHash, err := argon.Hash("password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(argonHash, "$argon2id$"))

	bcryptHash, err := bc.Hash("password")
	require.NoError(t, err)

	ok, err := bc.Compare("password", argonHash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = argon.Compare("password", bcryptHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	h := NewPasswordHasher("unknown", 1000).(*passwordHasher)
	assert.Equal(t, HasherBcrypt, h.kind)
	assert.Equal(t, DefaultBcryptCost, h.bcryptCost)
}
