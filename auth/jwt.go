package auth

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"

	apperrors "github.com/kbukum/hydrokit/errors"
)

// Claims are the token claims the hydration service issues and accepts.
type Claims struct {
	gojwt.RegisteredClaims
	// Scopes lists the tree names the caller may hydrate; empty means all.
	Scopes []string `json:"scopes,omitempty"`
}

// AllowsTree reports whether the claims permit hydrating the named tree.
// A token with no scopes allows every tree, as does the wildcard scope "*".
func (c *Claims) AllowsTree(tree string) bool {
	if len(c.Scopes) == 0 {
		return true
	}
	for _, s := range c.Scopes {
		if s == "*" || s == tree {
			return true
		}
	}
	return false
}

// TokenValidator validates a token string and returns the parsed claims.
// Middleware depends on this interface rather than a concrete service.
type TokenValidator interface {
	ValidateToken(token string) (*Claims, error)
}

// TokenValidatorFunc adapts an ordinary function to the TokenValidator
// interface.
type TokenValidatorFunc func(token string) (*Claims, error)

// ValidateToken implements TokenValidator.
func (f TokenValidatorFunc) ValidateToken(token string) (*Claims, error) {
	return f(token)
}

// Service signs and verifies JWT bearer tokens with an HMAC secret.
type Service struct {
	cfg JWTConfig
}

// NewService creates a JWT service from configuration.
func NewService(cfg JWTConfig) (*Service, error) {
	if cfg.Method == "" {
		cfg.Method = HS256
	}
	if cfg.TTL == 0 {
		cfg.TTL = 15 * time.Minute
	}
	if cfg.Secret == "" {
		return nil, errors.New("auth: jwt secret is required")
	}
	switch cfg.Method {
	case HS256, HS384, HS512:
	default:
		return nil, fmt.Errorf("auth: unsupported signing method %q", cfg.Method)
	}
	return &Service{cfg: cfg}, nil
}

// Generate creates a signed token for the subject, scoped to the given
// trees. Standard time claims are filled from the configured TTL.
func (s *Service) Generate(subject string, scopes ...string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			Audience:  s.cfg.Audience,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		Scopes: scopes,
	}
	token := gojwt.NewWithClaims(s.signingMethod(), claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse validates a token's signature, expiry, and the configured issuer
// and audience, and returns its claims.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	token, err := gojwt.ParseWithClaims(tokenString, &Claims{}, s.keyFunc, s.parserOptions()...)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, apperrors.TokenExpired().WithCause(err)
		}
		return nil, apperrors.InvalidToken().WithCause(err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.InvalidToken()
	}
	return claims, nil
}

// ValidateToken implements TokenValidator.
func (s *Service) ValidateToken(token string) (*Claims, error) {
	return s.Parse(token)
}

func (s *Service) signingMethod() gojwt.SigningMethod {
	switch s.cfg.Method {
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return gojwt.SigningMethodHS256
	}
}

// keyFunc rejects tokens signed with a method other than the configured
// one before handing back the verification key.
func (s *Service) keyFunc(token *gojwt.Token) (any, error) {
	if token.Method.Alg() != s.signingMethod().Alg() {
		return nil, fmt.Errorf("auth: unexpected signing method %s", token.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}

func (s *Service) parserOptions() []gojwt.ParserOption {
	opts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{s.signingMethod().Alg()}),
	}
	if s.cfg.Issuer != "" {
		opts = append(opts, gojwt.WithIssuer(s.cfg.Issuer))
	}
	if len(s.cfg.Audience) > 0 {
		opts = append(opts, gojwt.WithAudience(s.cfg.Audience[0]))
	}
	return opts
}
