package auth

import (
	"github.com/goliatone/go-errors"
)

const (
	TextCodeTokenExpired        = "auth_token_expired"
	TextCodeTokenMalformed      = "auth_token_malformed"
	TextCodeTokenUnsupported    = "auth_token_unsupported"
	TextCodeTokenBadSignature   = "auth_token_bad_signature"
	TextCodeTokenMissing        = "auth_token_missing"
	TextCodeInvalidHash         = "auth_invalid_hash"
	TextCodeWrongHashFormat     = "auth_wrong_hash_format"
	TextCodeNoAuthorities       = "auth_no_authorities"
	TextCodeNotRefreshToken     = "auth_not_refresh_token"
	TextCodeInvalidCredentials  = "auth_invalid_credentials"
	TextCodeInvalidVerification = "auth_invalid_verification"
	TextCodeKeyMaterial         = "auth_key_material"
)

// ErrTokenExpired is returned when a token's expiry has elapsed.
var ErrTokenExpired = errors.New("token has expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be parsed.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenUnsupported is returned when a token uses an algorithm or format
// other than the one this service signs with.
var ErrTokenUnsupported = errors.New("token format or algorithm is not supported", errors.CategoryAuth).
	WithTextCode(TextCodeTokenUnsupported).
	WithCode(errors.CodeUnauthorized)

// ErrTokenBadSignature is returned when a token's signature does not verify
// against the configured public key.
var ErrTokenBadSignature = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenBadSignature).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMissing is returned when an empty or blank token is presented.
var ErrTokenMissing = errors.New("token is empty or missing", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMissing).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidHash is returned when a verification hash fails validation.
var ErrInvalidHash = errors.New("invalid hash value", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidHash).
	WithCode(errors.CodeUnauthorized)

// ErrWrongHashFormat is returned when a cryptographically valid token is
// presented as a verification hash but does not carry the temporary scope
// shape. This rejects access and refresh tokens used as hashes.
var ErrWrongHashFormat = errors.New("hash is not in the right format", errors.CategoryAuth).
	WithTextCode(TextCodeWrongHashFormat).
	WithCode(errors.CodeUnauthorized)

// ErrNoAuthorities is returned when an access token is requested for a user
// with an empty authority set. An access token with zero scopes is useless
// downstream, so this is a hard failure.
var ErrNoAuthorities = errors.New("user has no authorities", errors.CategoryAuth).
	WithTextCode(TextCodeNoAuthorities).
	WithCode(errors.CodeUnauthorized)

// ErrNotRefreshToken is returned when the refresh flow receives a token whose
// scopes are anything other than exactly ["REFRESH_TOKEN"].
var ErrNotRefreshToken = errors.New("refresh token is invalid or is not a refresh token", errors.CategoryAuth).
	WithTextCode(TextCodeNotRefreshToken).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidCredentials is returned on a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials provided", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidVerification is the uniform retrieve failure. The message is
// deliberately generic: a stale hash, an expired hash, and a fabricated hash
// must be indistinguishable to the caller.
var ErrInvalidVerification = errors.New("request is invalid", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidVerification).
	WithCode(errors.CodeBadRequest)

// IsUnauthorizedError reports whether err belongs to the Unauthorized class.
func IsUnauthorizedError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Category == errors.CategoryAuth
	}
	return false
}

// IsTokenExpiredError reports whether err stems from an elapsed expiry.
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.TextCode == TextCodeTokenExpired
	}
	return false
}

// newKeyMaterialError builds the fatal startup error for missing or broken
// key configuration. It is never served as a runtime response.
func newKeyMaterialError(msg string, metadata map[string]any) *errors.Error {
	return errors.New(msg, errors.CategoryValidation).
		WithTextCode(TextCodeKeyMaterial).
		WithMetadata(metadata)
}
