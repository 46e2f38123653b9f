// Package token mints share tokens and derives the digest stored in their
// place.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

const (
	tokenBytes = 32
	// maxTokenLength rejects oversized input before hashing.
	maxTokenLength = 128
)

// Generate returns a URL-safe random token.
func Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("could not generate share token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Digest is the lookup key for a token at rest: hex BLAKE2b-256.
func Digest(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// WellFormed reports whether s could have come from Generate. It lets callers
// skip the store for obvious garbage.
func WellFormed(s string) bool {
	if s == "" || len(s) > maxTokenLength {
		return false
	}
	raw, err := base64.RawURLEncoding.DecodeString(s)
	return err == nil && len(raw) == tokenBytes
}
