package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenIssuer is the fixed iss claim on every token this service signs.
	TokenIssuer = "https://tradejournal.biz"
	// TokenAudience is the fixed aud claim on every token this service signs.
	TokenAudience = "trade-journal"
)

const (
	// ScopeRefreshToken is the single scope carried by refresh tokens.
	ScopeRefreshToken = "REFRESH_TOKEN"
	// ScopeTemporaryToken is the single scope carried by temporary tokens,
	// which double as verification hashes.
	ScopeTemporaryToken = "TEMPORARY_TOKEN"
)

// TokenClaims is the wire shape of every token kind. There is no explicit
// kind field: the shape of Scopes is the sole discriminator between access,
// refresh, and temporary tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
	Scopes      []string `json:"scopes,omitempty"`
	TenancyID   string   `json:"tenancy_id,omitempty"`
	TenancyName string   `json:"tenancy_name,omitempty"`
}

// Subject returns the subject claim, which is always an email.
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// Expires returns the expiration time, zero when absent.
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// Issued returns the issued at time, zero when absent.
func (c *TokenClaims) Issued() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// HasScope checks whether the scope list contains the given scope.
func (c *TokenClaims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// IsRefreshToken reports whether the scope shape is exactly ["REFRESH_TOKEN"].
func (c *TokenClaims) IsRefreshToken() bool {
	return len(c.Scopes) == 1 && c.Scopes[0] == ScopeRefreshToken
}

// IsTemporaryToken reports whether the scope shape is exactly ["TEMPORARY_TOKEN"].
func (c *TokenClaims) IsTemporaryToken() bool {
	return len(c.Scopes) == 1 && c.Scopes[0] == ScopeTemporaryToken
}

// HasTenancy reports whether the token carries tenancy claims.
func (c *TokenClaims) HasTenancy() bool {
	return c.TenancyID != ""
}
