package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "proofpack/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParsePackID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseReviewID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseDocumentID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, DocumentID(validUUID), id)
	})
}

// TestParseID_SecurityInvariants validates parsing at trust boundaries.
func TestParseID_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE proof_packs;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "550e8400\u200B-e29b-41d4-a716-446655440000", true},
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePackID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()
	parsers := map[string]func(string) error{
		"user":     func(s string) error { _, err := ParseUserID(s); return err },
		"pack":     func(s string) error { _, err := ParsePackID(s); return err },
		"document": func(s string) error { _, err := ParseDocumentID(s); return err },
		"gap":      func(s string) error { _, err := ParseGapID(s); return err },
		"review":   func(s string) error { _, err := ParseReviewID(s); return err },
		"finding":  func(s string) error { _, err := ParseFindingID(s); return err },
	}

	for name, parse := range parsers {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, parse(validUUID))
			for _, input := range []string{"", "invalid", uuid.Nil.String()} {
				require.Error(t, parse(input), "input %q", input)
			}
		})
	}
}

func TestIDText_RoundTrip(t *testing.T) {
	original := PackID(uuid.New())
	text, err := original.MarshalText()
	require.NoError(t, err)

	var parsed PackID
	require.NoError(t, parsed.UnmarshalText(text))
	assert.Equal(t, original, parsed)
	assert.Equal(t, original.String(), string(text))
}
