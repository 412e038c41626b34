package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/isdelr/shopsmart-be/internal/auth"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	t.Run("same password produces different digests", func(t *testing.T) {
		h1, err := hasher.Hash("password123")
		require.NoError(t, err)
		h2, err := hasher.Hash("password123")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
		assert.NotContains(t, h1, "password123")
	})

	t.Run("rejects passwords over 72 bytes", func(t *testing.T) {
		_, err := hasher.Hash(strings.Repeat("a", 73))
		assert.ErrorIs(t, err, auth.ErrPasswordTooLong)
	})

	t.Run("default cost when out of range", func(t *testing.T) {
		digest, err := auth.NewBcryptHasher(0).Hash("password123")
		require.NoError(t, err)
		cost, err := bcrypt.Cost([]byte(digest))
		require.NoError(t, err)
		assert.Equal(t, auth.DefaultHashCost, cost)
	})
}

func TestBcryptHasher_Verify(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	digest, err := hasher.Hash("password123")
	require.NoError(t, err)

	assert.True(t, hasher.Verify("password123", digest))
	assert.False(t, hasher.Verify("wrong", digest))
	assert.False(t, hasher.Verify("password123", "not-a-bcrypt-digest"))
	assert.False(t, hasher.Verify("password123", ""))
}
