package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/kbukum/hydrokit/errors"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(JWTConfig{Secret: testSecret})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func TestNewService_RequiresSecret(t *testing.T) {
	if _, err := NewService(JWTConfig{}); err == nil {
		t.Fatal("expected error for missing secret")
	}
}

func TestNewService_RejectsUnknownMethod(t *testing.T) {
	_, err := NewService(JWTConfig{Secret: testSecret, Method: "RS256"})
	if err == nil {
		t.Fatal("expected error for unsupported method")
	}
}

func TestGenerateAndParse(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Generate("reporting-service", "movie", "series")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := svc.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "reporting-service" {
		t.Errorf("expected subject, got %q", claims.Subject)
	}
	if len(claims.Scopes) != 2 || claims.Scopes[0] != "movie" {
		t.Errorf("unexpected scopes: %v", claims.Scopes)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Error("expected a future expiry")
	}
}

func TestParse_ExpiredToken(t *testing.T) {
	svc := newTestService(t)

	expired := &Claims{RegisteredClaims: gojwt.RegisteredClaims{
		Subject:   "stale",
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}}
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, expired).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Parse(signed)
	if !apperrors.HasCode(err, apperrors.ErrCodeTokenExpired) {
		t.Fatalf("expected TOKEN_EXPIRED, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	svc := newTestService(t)

	other, err := NewService(JWTConfig{Secret: "another-secret-another-secret-ab"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	token, err := other.Generate("intruder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Parse(token)
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Fatalf("expected INVALID_TOKEN, got %v", err)
	}
}

func TestParse_WrongMethod(t *testing.T) {
	svc := newTestService(t)

	// Same secret, different HMAC variant.
	signed, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, &Claims{}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Parse(signed)
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Fatalf("expected INVALID_TOKEN, got %v", err)
	}
}

func TestParse_IssuerMismatch(t *testing.T) {
	issuing, err := NewService(JWTConfig{Secret: testSecret, Issuer: "other-issuer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	verifying, err := NewService(JWTConfig{Secret: testSecret, Issuer: "hydrated"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := issuing.Generate("client")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := verifying.Parse(token); !apperrors.HasCode(err, apperrors.ErrCodeInvalidToken) {
		t.Fatalf("expected INVALID_TOKEN, got %v", err)
	}
}

func TestClaims_AllowsTree(t *testing.T) {
	unscoped := &Claims{}
	if !unscoped.AllowsTree("movie") {
		t.Error("empty scopes must allow all trees")
	}

	scoped := &Claims{Scopes: []string{"movie"}}
	if !scoped.AllowsTree("movie") {
		t.Error("expected scoped tree to be allowed")
	}
	if scoped.AllowsTree("series") {
		t.Error("expected unscoped tree to be denied")
	}

	wildcard := &Claims{Scopes: []string{"*"}}
	if !wildcard.AllowsTree("movie") || !wildcard.AllowsTree("series") {
		t.Error("expected wildcard scope to allow all trees")
	}
}

func TestTokenValidatorFunc(t *testing.T) {
	called := false
	v := TokenValidatorFunc(func(token string) (*Claims, error) {
		called = true
		return &Claims{Scopes: []string{token}}, nil
	})

	claims, err := v.ValidateToken("movie")
	if err != nil || !called {
		t.Fatalf("expected adapter to call the function, got %v", err)
	}
	if claims.Scopes[0] != "movie" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()
	if _, ok := ClaimsFromContext(ctx); ok {
		t.Fatal("expected no claims in fresh context")
	}

	claims := &Claims{Scopes: []string{"movie"}}
	ctx = WithClaims(ctx, claims)
	got, ok := ClaimsFromContext(ctx)
	if !ok || got != claims {
		t.Fatal("expected stored claims back")
	}
}

func TestAPIKeyVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-key"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := NewAPIKeyVerifier(map[string]string{"reporting": string(hash)})

	client, err := v.Verify("correct-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client != "reporting" {
		t.Fatalf("expected client name, got %q", client)
	}

	_, err = v.Verify("wrong-key")
	if !apperrors.HasCode(err, apperrors.ErrCodeUnauthorized) {
		t.Fatalf("expected UNAUTHORIZED, got %v", err)
	}
}

func TestHashAPIKeyRoundTrip(t *testing.T) {
	key, err := NewAPIKey(32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(key) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(key))
	}

	hash, err := HashAPIKey(key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := NewAPIKeyVerifier(map[string]string{"client": hash})
	if _, err := v.Verify(key); err != nil {
		t.Fatalf("expected hashed key to verify, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	disabled := Config{}
	if err := disabled.Validate(); err != nil {
		t.Fatalf("disabled config must validate, got %v", err)
	}

	empty := Config{Enabled: true}
	if err := empty.Validate(); err == nil {
		t.Fatal("expected error for enabled config without credentials")
	}

	bad := Config{Enabled: true, JWT: JWTConfig{Secret: testSecret, Method: "none"}}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for unsupported method")
	}

	ok := Config{Enabled: true, JWT: JWTConfig{Secret: testSecret, Method: HS256}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfig_Describe(t *testing.T) {
	cfg := Config{}
	if cfg.Describe() != "disabled" {
		t.Fatalf("unexpected description: %s", cfg.Describe())
	}

	cfg = Config{Enabled: true, JWT: JWTConfig{Secret: testSecret, Method: HS256, TTL: 15 * time.Minute}, APIKeys: map[string]string{"a": "x", "b": "y"}}
	desc := cfg.Describe()
	if !strings.Contains(desc, "JWT(HS256)") || !strings.Contains(desc, "api_keys=2") {
		t.Fatalf("unexpected description: %s", desc)
	}
}
