package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tradejournal/auth"
)

func TestSecurityConfig_Validate(t *testing.T) {
	valid := func() auth.SecurityConfig {
		return auth.SecurityConfig{
			Mode:            "PROVIDER",
			PrivateKeyPath:  "keys/private.pem",
			PublicKeyPath:   "keys/public.pem",
			AccessTokenTTL:  3600,
			RefreshTokenTTL: 2592000,
			FrontendURL:     "https://tradejournal.biz",
		}
	}

	t.Run("accepts a full provider config", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("accepts a minimal resource config", func(t *testing.T) {
		cfg := auth.SecurityConfig{
			Mode:          "RESOURCE",
			PublicKeyPath: "keys/public.pem",
		}

		assert.NoError(t, cfg.Validate())
	})

	t.Run("requires a mode", func(t *testing.T) {
		cfg := valid()
		cfg.Mode = ""

		assert.Error(t, cfg.Validate())
	})

	t.Run("rejects an unknown mode", func(t *testing.T) {
		cfg := valid()
		cfg.Mode = "HYBRID"

		assert.Error(t, cfg.Validate())
	})

	t.Run("requires a public key path", func(t *testing.T) {
		cfg := valid()
		cfg.PublicKeyPath = ""

		assert.Error(t, cfg.Validate())
	})

	t.Run("provider mode requires private key and expirations", func(t *testing.T) {
		cfg := valid()
		cfg.PrivateKeyPath = ""
		assert.Error(t, cfg.Validate())

		cfg = valid()
		cfg.AccessTokenTTL = 0
		assert.Error(t, cfg.Validate())

		cfg = valid()
		cfg.RefreshTokenTTL = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("resource mode does not require signing settings", func(t *testing.T) {
		cfg := valid()
		cfg.Mode = "RESOURCE"
		cfg.PrivateKeyPath = ""
		cfg.AccessTokenTTL = 0
		cfg.RefreshTokenTTL = 0

		assert.NoError(t, cfg.Validate())
	})

	t.Run("rejects a malformed frontend URL", func(t *testing.T) {
		cfg := valid()
		cfg.FrontendURL = "://not-a-url"

		assert.Error(t, cfg.Validate())
	})
}

func TestSecurityConfig_GetVerificationPagePath(t *testing.T) {
	cfg := auth.SecurityConfig{
		VerificationPages: map[auth.VerificationType]string{
			auth.VerificationRegistration: "/welcome",
		},
	}

	assert.Equal(t, "/welcome", cfg.GetVerificationPagePath(auth.VerificationRegistration))
	assert.Empty(t, cfg.GetVerificationPagePath(auth.VerificationChangePassword))

	var empty auth.SecurityConfig
	assert.Empty(t, empty.GetVerificationPagePath(auth.VerificationRegistration))
}
