package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	hasher := testHasher()

	t.Run("hash then verify round trips", func(t *testing.T) {
		hash, err := hasher.Hash("correct horse battery staple")
		require.Nil(t, err)
		require.NotEmpty(t, hash)
		assert.True(t, hasher.Verify("correct horse battery staple", hash))
	})

	t.Run("same password hashes to different strings", func(t *testing.T) {
		first, err := hasher.Hash("password123")
		require.Nil(t, err)
		second, err := hasher.Hash("password123")
		require.Nil(t, err)

		assert.NotEqual(t, first, second)
		assert.True(t, hasher.Verify("password123", first))
		assert.True(t, hasher.Verify("password123", second))
	})

	t.Run("wrong password does not verify", func(t *testing.T) {
		hash, err := hasher.Hash("password123")
		require.Nil(t, err)
		assert.False(t, hasher.Verify("password124", hash))
	})

	t.Run("malformed hash is a mismatch, not an error", func(t *testing.T) {
		assert.False(t, hasher.Verify("password123", ""))
		assert.False(t, hasher.Verify("password123", "not-a-bcrypt-hash"))
		assert.False(t, hasher.Verify("password123", "$2a$10$tooshort"))
	})

	t.Run("empty password is rejected", func(t *testing.T) {
		_, err := hasher.Hash("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
	})
}
