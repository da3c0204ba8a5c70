package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds the security options this package consumes. It is owned by
// the embedding application; the package never loads configuration itself.
type Config interface {
	GetMode() string
	GetPrivateKeyPath() string
	GetPublicKeyPath() string
	GetAccessTokenTTL() int
	GetRefreshTokenTTL() int
	GetFrontendURL() string
	GetVerificationPagePath(t VerificationType) string
}

// TokenService mints signed bearer tokens. Requires PROVIDER mode keys.
type TokenService interface {
	GenerateAccessToken(user *User) (*IssuedToken, error)
	GenerateRefreshToken(user *User) (*IssuedToken, error)
	GenerateTemporaryToken(email string) (*IssuedToken, error)
}

// TokenValidator parses and cryptographically verifies tokens. It never
// mutates state and is safe for unlimited concurrent use.
type TokenValidator interface {
	Parse(token string) (*TokenClaims, error)
	IsValid(token string) bool
}

// UserDirectory retrieves users for claim construction and for the
// verification cascade. Lookup misses surface as NotFound errors.
type UserDirectory interface {
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// AuthoritySource resolves the authority names that become access token
// scopes. The implementation is selected once at startup; there is no
// runtime switching between sources.
type AuthoritySource interface {
	FindAuthorities(ctx context.Context, user *User) ([]string, error)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
