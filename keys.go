package auth

import (
	"crypto/rsa"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// Mode is the operating mode the key material is loaded for.
type Mode string

const (
	// ModeProvider signs and verifies tokens and requires the full keypair.
	ModeProvider Mode = "PROVIDER"
	// ModeResource verifies tokens only and requires just the public key.
	ModeResource Mode = "RESOURCE"
)

const (
	// DefaultAccessTokenTTL is the fallback applied in RESOURCE mode when no
	// access token TTL is configured.
	DefaultAccessTokenTTL = 3600 * time.Second
	// TemporaryTokenTTL is the fixed lifetime of temporary tokens. It is not
	// configurable.
	TemporaryTokenTTL = 900 * time.Second
)

// KeyMaterial holds the signing keypair and the derived expirations. It is
// loaded once at startup and never mutated afterwards, so a single instance
// is shared by all callers without locking.
type KeyMaterial struct {
	mode       Mode
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// LoadKeyMaterial loads and validates keys for the configured mode. Any
// failure here is fatal configuration: the process must not serve requests.
func LoadKeyMaterial(cfg Config) (*KeyMaterial, error) {
	mode := Mode(strings.ToUpper(strings.TrimSpace(cfg.GetMode())))
	switch mode {
	case ModeProvider, ModeResource:
	default:
		return nil, newKeyMaterialError("unknown operating mode", map[string]any{
			"mode": cfg.GetMode(),
		})
	}

	publicPath := strings.TrimSpace(cfg.GetPublicKeyPath())
	if publicPath == "" {
		return nil, newKeyMaterialError("public key is required", map[string]any{
			"mode": string(mode),
		})
	}

	publicKey, err := readPublicKey(publicPath)
	if err != nil {
		return nil, err
	}

	km := &KeyMaterial{
		mode:       mode,
		publicKey:  publicKey,
		accessTTL:  time.Duration(cfg.GetAccessTokenTTL()) * time.Second,
		refreshTTL: time.Duration(cfg.GetRefreshTokenTTL()) * time.Second,
	}

	if mode == ModeResource {
		if km.accessTTL <= 0 {
			km.accessTTL = DefaultAccessTokenTTL
		}
		return km, nil
	}

	privatePath := strings.TrimSpace(cfg.GetPrivateKeyPath())
	if privatePath == "" {
		return nil, newKeyMaterialError("private key is required in PROVIDER mode", map[string]any{
			"mode": string(mode),
		})
	}

	if km.privateKey, err = readPrivateKey(privatePath); err != nil {
		return nil, err
	}

	// Signing is active, expirations must be deliberate: no silent defaults.
	if km.accessTTL <= 0 {
		return nil, newKeyMaterialError("access token TTL is required in PROVIDER mode", map[string]any{
			"access_token_ttl": cfg.GetAccessTokenTTL(),
		})
	}
	if km.refreshTTL <= 0 {
		return nil, newKeyMaterialError("refresh token TTL is required in PROVIDER mode", map[string]any{
			"refresh_token_ttl": cfg.GetRefreshTokenTTL(),
		})
	}

	return km, nil
}

// NewProviderKeyMaterial builds PROVIDER mode material from an in-memory
// key, deriving the public half from the private one.
func NewProviderKeyMaterial(key *rsa.PrivateKey, accessTTL, refreshTTL time.Duration) (*KeyMaterial, error) {
	if key == nil {
		return nil, newKeyMaterialError("private key is required in PROVIDER mode", nil)
	}
	if accessTTL <= 0 {
		return nil, newKeyMaterialError("access token TTL is required in PROVIDER mode", nil)
	}
	if refreshTTL <= 0 {
		return nil, newKeyMaterialError("refresh token TTL is required in PROVIDER mode", nil)
	}

	return &KeyMaterial{
		mode:       ModeProvider,
		privateKey: key,
		publicKey:  &key.PublicKey,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// NewResourceKeyMaterial builds RESOURCE mode material from an in-memory
// public key.
func NewResourceKeyMaterial(key *rsa.PublicKey, accessTTL time.Duration) (*KeyMaterial, error) {
	if key == nil {
		return nil, newKeyMaterialError("public key is required", nil)
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}

	return &KeyMaterial{
		mode:      ModeResource,
		publicKey: key,
		accessTTL: accessTTL,
	}, nil
}

// Mode returns the operating mode the material was loaded for.
func (k *KeyMaterial) Mode() Mode {
	return k.mode
}

// CanSign reports whether the material carries a private key.
func (k *KeyMaterial) CanSign() bool {
	return k.privateKey != nil
}

// PublicKey returns the verification key.
func (k *KeyMaterial) PublicKey() *rsa.PublicKey {
	return k.publicKey
}

// AccessTokenTTL returns the configured access token lifetime.
func (k *KeyMaterial) AccessTokenTTL() time.Duration {
	return k.accessTTL
}

// RefreshTokenTTL returns the configured refresh token lifetime.
func (k *KeyMaterial) RefreshTokenTTL() time.Duration {
	return k.refreshTTL
}

func readPrivateKey(path string) (*rsa.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "failed to read private key file").
			WithTextCode(TextCodeKeyMaterial).
			WithMetadata(map[string]any{"path": path})
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "failed to parse private key").
			WithTextCode(TextCodeKeyMaterial).
			WithMetadata(map[string]any{"path": path})
	}

	return key, nil
}

func readPublicKey(path string) (*rsa.PublicKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "failed to read public key file").
			WithTextCode(TextCodeKeyMaterial).
			WithMetadata(map[string]any{"path": path})
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM(raw)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "failed to parse public key").
			WithTextCode(TextCodeKeyMaterial).
			WithMetadata(map[string]any{"path": path})
	}

	return key, nil
}
