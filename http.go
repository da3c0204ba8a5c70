package auth

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

const (
	// HeaderAuthorization is the header the bearer convention lives in.
	HeaderAuthorization = "Authorization"
	// BearerScheme is the literal prefix in front of the token.
	BearerScheme = "Bearer "
	// ClaimsContextKey is the router locals key the middleware stores parsed
	// claims under.
	ClaimsContextKey = "claims"
)

// ExtractBearerToken pulls the raw token out of an Authorization header
// value following the `Bearer <token>` convention.
func ExtractBearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", ErrTokenMissing
	}

	if len(header) <= len(BearerScheme) || !strings.EqualFold(header[:len(BearerScheme)], BearerScheme) {
		return "", ErrTokenMalformed.Clone().WithMetadata(map[string]any{
			"cause": "authorization header is not a bearer token",
		})
	}

	token := strings.TrimSpace(header[len(BearerScheme):])
	if token == "" {
		return "", ErrTokenMissing
	}

	return token, nil
}

// RequireAccessToken returns a middleware that validates the bearer token on
// every request and stores the parsed claims in both the router locals and
// the standard context. Scope checks beyond parsing stay with the handler.
func RequireAccessToken(validator TokenValidator, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	if errorHandler == nil {
		errorHandler = defaultAuthErrorHandler
	}

	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			raw, err := ExtractBearerToken(ctx.GetString(HeaderAuthorization, ""))
			if err != nil {
				return errorHandler(ctx, err)
			}

			claims, err := validator.Parse(raw)
			if err != nil {
				return errorHandler(ctx, err)
			}

			ctx.Locals(ClaimsContextKey, claims)
			ctx.SetContext(WithClaimsContext(ctx.Context(), claims))

			return hf(ctx)
		}
	}
}

func defaultAuthErrorHandler(ctx router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		richErr = goerrors.Wrap(err, goerrors.CategoryAuth, "invalid authentication token").
			WithCode(goerrors.CodeUnauthorized)
	}

	return ctx.JSON(richErr.Code, map[string]any{
		"error": richErr.Message,
		"code":  richErr.TextCode,
	})
}

// GetRouterClaims extracts the TokenClaims the middleware stored in the
// router context.
func GetRouterClaims(ctx router.Context) (*TokenClaims, bool) {
	raw := ctx.Locals(ClaimsContextKey)
	if raw == nil {
		return nil, false
	}
	claims, ok := raw.(*TokenClaims)
	return claims, ok
}
