package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/hydrokit/auth"
	apperrors "github.com/kbukum/hydrokit/errors"
)

// HeaderAPIKey is the header API key credentials are presented in.
const HeaderAPIKey = "X-Api-Key"

// ContextClient is the Gin context key holding the authenticated client
// name: the token subject for bearer tokens, the configured client name
// for API keys.
const ContextClient = "client"

// AuthConfig configures the authentication middleware. At least one of
// Validator and APIKeys must be set.
type AuthConfig struct {
	// Validator validates bearer tokens.
	Validator auth.TokenValidator
	// APIKeys validates X-Api-Key credentials.
	APIKeys *auth.APIKeyVerifier
	// SkipPaths are URL path prefixes that bypass authentication, such
	// as health probes.
	SkipPaths []string
}

// Auth returns middleware that authenticates requests with a Bearer token
// or an API key. Validated token claims are stored in the request context
// via auth.WithClaims; the client name is stored under ContextClient.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range cfg.SkipPaths {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		if key := c.GetHeader(HeaderAPIKey); key != "" && cfg.APIKeys != nil {
			client, err := cfg.APIKeys.Verify(key)
			if err != nil {
				abortUnauthorized(c, err)
				return
			}
			c.Set(ContextClient, client)
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c, apperrors.Unauthorized("Authorization header required."))
			return
		}
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			abortUnauthorized(c, apperrors.Unauthorized("Authorization header must use the Bearer scheme."))
			return
		}
		if cfg.Validator == nil {
			abortUnauthorized(c, apperrors.Unauthorized("Bearer tokens are not accepted."))
			return
		}

		claims, err := cfg.Validator.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		c.Set(ContextClient, claims.Subject)
		c.Request = c.Request.WithContext(auth.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// abortUnauthorized ends the request with the error envelope, mapping
// non-AppError failures to a generic 401.
func abortUnauthorized(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Unauthorized("")
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
