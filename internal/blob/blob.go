// Package blob resolves document storage keys into short-lived download
// handles. Documents are never streamed through this service.
package blob

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound   = errors.New("blob not found")
	ErrEmptyKey   = errors.New("storage key is empty")
	ErrInvalidKey = errors.New("storage key is invalid")
)

// Handle is a signed URL valid until ExpiresAt.
type Handle struct {
	URL       string
	ExpiresAt time.Time
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	return nil
}
