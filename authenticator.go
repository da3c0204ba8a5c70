package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// TokenPair is the access + refresh pair handed out by the sign-in and
// refresh flows.
type TokenPair struct {
	AccessToken  *IssuedToken `json:"access_token"`
	RefreshToken *IssuedToken `json:"refresh_token"`
}

// Auther implements the authentication flow on top of the token service.
type Auther struct {
	users       UserDirectory
	authorities AuthoritySource
	tokens      TokenService
	validator   TokenValidator
	logger      Logger
}

var _ Authenticator = (*Auther)(nil)

// NewAuthenticator returns a new Authenticator.
func NewAuthenticator(users UserDirectory, authorities AuthoritySource, tokens TokenService, validator TokenValidator) *Auther {
	return &Auther{
		users:       users,
		authorities: authorities,
		tokens:      tokens,
		validator:   validator,
		logger:      defLogger{},
	}
}

// WithLogger overrides the logger used by the authenticator.
func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// Login verifies the credentials and mints a fresh token pair. A missing
// user and a wrong password fail identically.
func (s *Auther) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		s.logger.Info("Login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	return s.pairFor(ctx, user)
}

// Refresh mints a fresh token pair from a refresh token. The presented
// token must carry exactly the refresh scope shape; an access token is
// rejected here no matter how valid its signature is.
func (s *Auther) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.validator.Parse(refreshToken)
	if err != nil {
		return nil, err
	}

	if !claims.IsRefreshToken() {
		return nil, ErrNotRefreshToken
	}

	user, err := s.users.GetUserByEmail(ctx, claims.Subject())
	if err != nil {
		return nil, err
	}

	return s.pairFor(ctx, user)
}

func (s *Auther) pairFor(ctx context.Context, user *User) (*TokenPair, error) {
	names, err := s.authorities.FindAuthorities(ctx, user)
	if err != nil {
		s.logger.Error("failed to resolve authorities", "email", user.Email, "error", err)
		return nil, err
	}

	// Copy so the caller's record keeps its stored authority set.
	claimUser := *user
	claimUser.Authorities = names

	access, err := s.tokens.GenerateAccessToken(&claimUser)
	if err != nil {
		return nil, err
	}

	refresh, err := s.tokens.GenerateRefreshToken(&claimUser)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
