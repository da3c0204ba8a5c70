package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// IssuedToken is a signed token plus its issuance timestamps, so callers can
// report issued-at without re-parsing the token.
type IssuedToken struct {
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RSATokenService mints RS256 signed tokens from PROVIDER mode key material.
type RSATokenService struct {
	keys   *KeyMaterial
	logger Logger
	now    func() time.Time
}

var _ TokenService = (*RSATokenService)(nil)

// NewTokenService creates a TokenService. The key material must be able to
// sign; RESOURCE mode material is rejected.
func NewTokenService(keys *KeyMaterial, logger Logger) (*RSATokenService, error) {
	if keys == nil || !keys.CanSign() {
		return nil, errors.New("token service requires PROVIDER mode key material", errors.CategoryValidation).
			WithTextCode(TextCodeKeyMaterial)
	}

	if logger == nil {
		logger = defLogger{}
	}

	return &RSATokenService{
		keys:   keys,
		logger: logger,
		now:    time.Now,
	}, nil
}

// WithClock overrides the time source. Intended for tests.
func (ts *RSATokenService) WithClock(now func() time.Time) *RSATokenService {
	if now != nil {
		ts.now = now
	}
	return ts
}

// GenerateAccessToken mints an access token whose scopes are the user's
// authority names. A user without authorities cannot receive one.
func (ts *RSATokenService) GenerateAccessToken(user *User) (*IssuedToken, error) {
	if user == nil {
		return nil, errors.New("user is required", errors.CategoryBadInput)
	}

	if len(user.Authorities) == 0 {
		return nil, ErrNoAuthorities.Clone().WithMetadata(map[string]any{
			"email": user.Email,
		})
	}

	claims := ts.newClaims(user.Email, append([]string(nil), user.Authorities...), ts.keys.AccessTokenTTL())
	if user.HasTenancy() {
		claims.TenancyID = user.TenancyID.String()
		claims.TenancyName = user.TenancyName
	}

	return ts.sign(claims)
}

// GenerateRefreshToken mints a refresh token. Refresh tokens never encode
// authorization, so the authority set and tenancy are ignored.
func (ts *RSATokenService) GenerateRefreshToken(user *User) (*IssuedToken, error) {
	if user == nil {
		return nil, errors.New("user is required", errors.CategoryBadInput)
	}

	claims := ts.newClaims(user.Email, []string{ScopeRefreshToken}, ts.keys.RefreshTokenTTL())
	return ts.sign(claims)
}

// GenerateTemporaryToken mints the short-lived token behind verification
// hashes. The email is an arbitrary subject, not an authenticated identity.
func (ts *RSATokenService) GenerateTemporaryToken(email string) (*IssuedToken, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("email is required", errors.CategoryBadInput)
	}

	claims := ts.newClaims(email, []string{ScopeTemporaryToken}, TemporaryTokenTTL)
	return ts.sign(claims)
}

func (ts *RSATokenService) newClaims(subject string, scopes []string, ttl time.Duration) *TokenClaims {
	now := ts.now()

	// Timestamps truncate to seconds and RS256 signing is deterministic, so
	// without a unique jti two tokens minted in the same second would be
	// byte-identical. Renewal relies on every minted token being distinct.
	return &TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    TokenIssuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{TokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scopes: scopes,
	}
}

func (ts *RSATokenService) sign(claims *TokenClaims) (*IssuedToken, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)

	signed, err := token.SignedString(ts.keys.privateKey)
	if err != nil {
		ts.logger.Error("TokenService failed to sign JWT", "error", err)
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to sign JWT")
	}

	return &IssuedToken{
		Token:     signed,
		IssuedAt:  claims.Issued(),
		ExpiresAt: claims.Expires(),
	}, nil
}
