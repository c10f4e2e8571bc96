package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	// Salted: the same password hashes differently every time.
	again, err := HashPassword("secret123")
	assert.NoError(t, err)
	assert.NotEqual(t, hash, again)
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	assert.NoError(t, err)

	assert.True(t, CheckPassword(hash, "secret123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-bcrypt-hash", "secret123"))
	assert.False(t, CheckPassword("", "secret123"))
}

func TestVerificationTokenRoundTrip(t *testing.T) {
	token := EncodeVerification("user@example.com")
	assert.NotEqual(t, "user@example.com", token)

	email, err := DecodeVerification(token)
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
}

func TestDecodeVerification_Invalid(t *testing.T) {
	_, err := DecodeVerification("%%%definitely not base64%%%")
	assert.Error(t, err)
}
