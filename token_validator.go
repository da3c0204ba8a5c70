package auth

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
)

// TokenInfo is the flattened claim view handed to transport layers. It
// carries the scopes untouched: asserting the expected scope shape is the
// caller's responsibility, because the same parser serves all token kinds.
type TokenInfo struct {
	Subject     string   `json:"subject"`
	Scopes      []string `json:"scopes,omitempty"`
	TenancyID   string   `json:"tenancy_id,omitempty"`
	TenancyName string   `json:"tenancy_name,omitempty"`
}

// RSATokenValidator verifies RS256 tokens against the public key. It holds
// no mutable state and may be shared freely across goroutines.
type RSATokenValidator struct {
	keys   *KeyMaterial
	logger Logger
}

var _ TokenValidator = (*RSATokenValidator)(nil)

// NewTokenValidator creates a TokenValidator. Both PROVIDER and RESOURCE
// mode key material can verify.
func NewTokenValidator(keys *KeyMaterial, logger Logger) (*RSATokenValidator, error) {
	if keys == nil || keys.PublicKey() == nil {
		return nil, errors.New("token validator requires key material with a public key", errors.CategoryValidation).
			WithTextCode(TextCodeKeyMaterial)
	}

	if logger == nil {
		logger = defLogger{}
	}

	return &RSATokenValidator{keys: keys, logger: logger}, nil
}

// Parse verifies the token and returns its claims. Failures are classified
// into the Unauthorized taxonomy; the offending token and underlying reason
// travel in error metadata, which is safe to log but not to echo to clients.
func (v *RSATokenValidator) Parse(raw string) (*TokenClaims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrTokenMissing
	}

	token, err := jwt.ParseWithClaims(raw, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			v.logger.Error("TokenValidator encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, ErrTokenUnsupported
		}
		return v.keys.PublicKey(), nil
	}, jwt.WithIssuer(TokenIssuer), jwt.WithAudience(TokenAudience))

	if err != nil {
		return nil, v.classify(raw, err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		v.logger.Error("TokenValidator could not decode claims")
		return nil, ErrTokenMalformed.Clone().WithMetadata(map[string]any{"token": raw})
	}

	return claims, nil
}

// IsValid reports whether the token parses, verifies, and has not expired.
func (v *RSATokenValidator) IsValid(raw string) bool {
	_, err := v.Parse(raw)
	return err == nil
}

// ExtractAccessInfo parses an access token and flattens its claims. It does
// not check the scope shape.
func (v *RSATokenValidator) ExtractAccessInfo(raw string) (*TokenInfo, error) {
	claims, err := v.Parse(raw)
	if err != nil {
		return nil, err
	}

	return &TokenInfo{
		Subject:     claims.Subject(),
		Scopes:      append([]string(nil), claims.Scopes...),
		TenancyID:   claims.TenancyID,
		TenancyName: claims.TenancyName,
	}, nil
}

// ExtractRefreshInfo parses a refresh token and flattens its claims. It does
// not check the scope shape; the refresh flow does that.
func (v *RSATokenValidator) ExtractRefreshInfo(raw string) (*TokenInfo, error) {
	return v.ExtractAccessInfo(raw)
}

func (v *RSATokenValidator) classify(raw string, err error) error {
	clone := ErrTokenMalformed.Clone()

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		clone = ErrTokenExpired.Clone()
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		clone = ErrTokenBadSignature.Clone()
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		clone = ErrTokenUnsupported.Clone()
	case errors.Is(err, jwt.ErrTokenMalformed):
		clone = ErrTokenMalformed.Clone()
	}

	clone.Source = err
	return clone.WithMetadata(map[string]any{
		"token": raw,
		"cause": err.Error(),
	})
}
