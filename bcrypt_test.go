package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradejournal/auth"
)

func TestHashPassword(t *testing.T) {
	t.Run("hashes and verifies a password", func(t *testing.T) {
		hash, err := auth.HashPassword("securePassword123!")

		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotEqual(t, "securePassword123!", hash)

		assert.NoError(t, auth.ComparePasswordAndHash("securePassword123!", hash))
	})

	t.Run("rejects an empty password", func(t *testing.T) {
		hash, err := auth.HashPassword("")

		assert.Error(t, err)
		assert.Empty(t, hash)
	})
}

func TestComparePasswordAndHash(t *testing.T) {
	hash, err := auth.HashPassword("original")
	require.NoError(t, err)

	t.Run("wrong password fails as invalid credentials", func(t *testing.T) {
		err := auth.ComparePasswordAndHash("different", hash)

		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid credentials")
	})

	t.Run("garbage hash fails", func(t *testing.T) {
		assert.Error(t, auth.ComparePasswordAndHash("original", "not-a-bcrypt-hash"))
	})
}

func TestRandomPasswordHash(t *testing.T) {
	first := auth.RandomPasswordHash()
	second := auth.RandomPasswordHash()

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}
