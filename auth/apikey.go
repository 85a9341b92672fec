package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/kbukum/hydrokit/errors"
)

// APIKeyVerifier checks presented API keys against configured bcrypt
// hashes. Raw keys are never stored.
type APIKeyVerifier struct {
	hashes map[string]string
}

// NewAPIKeyVerifier creates a verifier from a map of client names to
// bcrypt hashes.
func NewAPIKeyVerifier(hashes map[string]string) *APIKeyVerifier {
	return &APIKeyVerifier{hashes: hashes}
}

// Verify returns the client name whose hash matches the presented key.
// Every configured hash is compared so timing does not reveal which client
// names exist.
func (v *APIKeyVerifier) Verify(key string) (string, error) {
	matched := ""
	for name, hash := range v.hashes {
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil {
			matched = name
		}
	}
	if matched == "" {
		return "", apperrors.Unauthorized("Invalid API key.")
	}
	return matched, nil
}

// HashAPIKey returns the bcrypt hash of a key, for storing in
// configuration.
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("auth: hash api key: %w", err)
	}
	return string(hash), nil
}

// NewAPIKey creates a cryptographically random key of the given byte
// length, hex encoded.
func NewAPIKey(length int) (string, error) {
	b := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", fmt.Errorf("auth: generate api key: %w", err)
	}
	return hex.EncodeToString(b), nil
}
