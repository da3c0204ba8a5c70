package auth

// HashProvider repurposes signed temporary tokens as opaque verification
// hashes. Outside this component a hash is just a string: callers embed it
// in links and hand it back, never inspecting it.
type HashProvider struct {
	tokens    TokenService
	validator TokenValidator
}

// NewHashProvider bridges a TokenService and TokenValidator into the hash
// abstraction the verification workflow consumes.
func NewHashProvider(tokens TokenService, validator TokenValidator) *HashProvider {
	return &HashProvider{
		tokens:    tokens,
		validator: validator,
	}
}

// GenerateHash mints a fresh hash carrying the email. The hash is the signed
// temporary token string verbatim.
func (h *HashProvider) GenerateHash(email string) (string, error) {
	issued, err := h.tokens.GenerateTemporaryToken(email)
	if err != nil {
		return "", err
	}
	return issued.Token, nil
}

// ReadHashValue recovers the email from a hash. The scope shape must be
// exactly ["TEMPORARY_TOKEN"]: an access or refresh token presented as a
// hash is rejected even though it verifies cryptographically.
func (h *HashProvider) ReadHashValue(hash string) (string, error) {
	if !h.validator.IsValid(hash) {
		return "", ErrInvalidHash
	}

	claims, err := h.validator.Parse(hash)
	if err != nil {
		return "", ErrInvalidHash
	}

	if !claims.IsTemporaryToken() {
		return "", ErrWrongHashFormat
	}

	return claims.Subject(), nil
}
