package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradejournal/auth"
)

func TestHashProvider_RoundTrip(t *testing.T) {
	service, validator := testTokenPlumbing(t)
	provider := auth.NewHashProvider(service, validator)

	hash, err := provider.GenerateHash("ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	email, err := provider.ReadHashValue(hash)

	assert.NoError(t, err)
	assert.Equal(t, "ada@example.com", email)
}

func TestHashProvider_ReadHashValue(t *testing.T) {
	service, validator := testTokenPlumbing(t)
	provider := auth.NewHashProvider(service, validator)

	t.Run("rejects garbage as an invalid hash", func(t *testing.T) {
		email, err := provider.ReadHashValue("not-a-hash")

		assert.Empty(t, email)
		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid hash value")
		assert.True(t, auth.IsUnauthorizedError(err))
	})

	t.Run("rejects a tampered hash", func(t *testing.T) {
		hash, err := provider.GenerateHash("ada@example.com")
		require.NoError(t, err)

		email, err := provider.ReadHashValue(hash + "x")

		assert.Empty(t, email)
		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid hash value")
	})

	t.Run("rejects an access token shaped hash", func(t *testing.T) {
		issued, err := service.GenerateAccessToken(newTestUser("ada@example.com", "ROLE_USER"))
		require.NoError(t, err)

		email, err := provider.ReadHashValue(issued.Token)

		assert.Empty(t, email)
		require.Error(t, err)
		assert.ErrorContains(t, err, "hash is not in the right format")
	})

	t.Run("rejects a refresh token shaped hash", func(t *testing.T) {
		issued, err := service.GenerateRefreshToken(newTestUser("ada@example.com"))
		require.NoError(t, err)

		email, err := provider.ReadHashValue(issued.Token)

		assert.Empty(t, email)
		require.Error(t, err)
		assert.ErrorContains(t, err, "hash is not in the right format")
	})

	t.Run("rejects an expired hash", func(t *testing.T) {
		keys := testKeyMaterial(t)
		past, err := auth.NewTokenService(keys, nil)
		require.NoError(t, err)
		past = past.WithClock(func() time.Time { return time.Now().Add(-16 * time.Minute) })

		expired := auth.NewHashProvider(past, validator)

		hash, err := expired.GenerateHash("ada@example.com")
		require.NoError(t, err)

		email, err := provider.ReadHashValue(hash)

		assert.Empty(t, email)
		require.Error(t, err)
		assert.ErrorContains(t, err, "invalid hash value")
	})
}
