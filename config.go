package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SecurityConfig is a ready-made Config implementation for applications that
// load security settings from their own configuration layer.
type SecurityConfig struct {
	Mode              string                      `json:"mode"`
	PrivateKeyPath    string                      `json:"private_key_path,omitempty"`
	PublicKeyPath     string                      `json:"public_key_path"`
	AccessTokenTTL    int                         `json:"access_token_ttl,omitempty"`
	RefreshTokenTTL   int                         `json:"refresh_token_ttl,omitempty"`
	FrontendURL       string                      `json:"frontend_url"`
	VerificationPages map[VerificationType]string `json:"verification_pages,omitempty"`
}

var _ Config = (*SecurityConfig)(nil)

// Validate checks the configuration shape before key material is loaded.
func (c SecurityConfig) Validate() error {
	err := validation.ValidateStruct(&c,
		validation.Field(
			&c.Mode,
			validation.Required,
			validation.In(string(ModeProvider), string(ModeResource)),
		),
		validation.Field(&c.PublicKeyPath, validation.Required),
		validation.Field(&c.FrontendURL, is.URL),
	)
	if err != nil {
		return err
	}

	if Mode(c.Mode) != ModeProvider {
		return nil
	}

	return validation.ValidateStruct(&c,
		validation.Field(&c.PrivateKeyPath, validation.Required),
		validation.Field(&c.AccessTokenTTL, validation.Required, validation.Min(1)),
		validation.Field(&c.RefreshTokenTTL, validation.Required, validation.Min(1)),
	)
}

func (c SecurityConfig) GetMode() string {
	return c.Mode
}

func (c SecurityConfig) GetPrivateKeyPath() string {
	return c.PrivateKeyPath
}

func (c SecurityConfig) GetPublicKeyPath() string {
	return c.PublicKeyPath
}

func (c SecurityConfig) GetAccessTokenTTL() int {
	return c.AccessTokenTTL
}

func (c SecurityConfig) GetRefreshTokenTTL() int {
	return c.RefreshTokenTTL
}

func (c SecurityConfig) GetFrontendURL() string {
	return c.FrontendURL
}

func (c SecurityConfig) GetVerificationPagePath(t VerificationType) string {
	if c.VerificationPages == nil {
		return ""
	}
	return c.VerificationPages[t]
}
