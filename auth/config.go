package auth

import (
	"errors"
	"fmt"
	"time"
)

// SigningMethod defines the supported JWT signing algorithms. The service
// signs and verifies with a shared HMAC secret.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// Config holds authentication configuration. Requests authenticate with
// either a bearer token issued by the JWT service or a pre-shared API key.
type Config struct {
	// Enabled controls whether authentication is enforced.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// JWT configures bearer token validation.
	JWT JWTConfig `yaml:"jwt" mapstructure:"jwt"`

	// APIKeys maps client names to bcrypt hashes of their keys. Raw keys
	// never appear in configuration.
	APIKeys map[string]string `yaml:"api_keys" mapstructure:"api_keys"`
}

// JWTConfig configures the JWT token service.
type JWTConfig struct {
	// Secret is the HMAC signing key.
	Secret string `yaml:"secret" mapstructure:"secret"`

	// Method is the signing algorithm (default: HS256).
	Method SigningMethod `yaml:"method" mapstructure:"method"`

	// Issuer is the expected "iss" claim (optional).
	Issuer string `yaml:"issuer" mapstructure:"issuer"`

	// Audience is the expected "aud" claim (optional).
	Audience []string `yaml:"audience" mapstructure:"audience"`

	// TTL is the lifetime of issued tokens (default: 15m).
	TTL time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// ApplyDefaults fills zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.JWT.Method == "" {
		c.JWT.Method = HS256
	}
	if c.JWT.TTL == 0 {
		c.JWT.TTL = 15 * time.Minute
	}
}

// Validate checks the configuration. Validation only applies when
// authentication is enabled.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.JWT.Secret == "" && len(c.APIKeys) == 0 {
		return errors.New("auth: enabled but no jwt secret or api keys configured")
	}
	if c.JWT.Secret != "" {
		switch c.JWT.Method {
		case HS256, HS384, HS512:
		default:
			return fmt.Errorf("auth: unsupported signing method %q", c.JWT.Method)
		}
	}
	return nil
}

// Describe returns a one-liner for the startup summary, for example
// "JWT(HS256) TTL=15m0s api_keys=2".
func (c *Config) Describe() string {
	if !c.Enabled {
		return "disabled"
	}
	var line string
	if c.JWT.Secret != "" {
		line = fmt.Sprintf("JWT(%s) TTL=%s", c.JWT.Method, c.JWT.TTL)
	}
	if len(c.APIKeys) > 0 {
		if line != "" {
			line += " "
		}
		line += fmt.Sprintf("api_keys=%d", len(c.APIKeys))
	}
	if line == "" {
		return "enabled (no credentials configured)"
	}
	return line
}
