package token_test

import (
	"strings"
	"testing"

	"autoecole/shared/token"
)

func TestNewTrackingToken(t *testing.T) {
	first, err := token.NewTrackingToken()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if !strings.HasPrefix(first, "track_") {
		t.Errorf("expected track_ prefix, got: %s", first)
	}

	if !token.IsTrackingToken(first) {
		t.Errorf("expected generated token to validate, got: %s", first)
	}

	second, err := token.NewTrackingToken()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if first == second {
		t.Error("expected successive tokens to differ")
	}
}

func TestIsTrackingToken(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected bool
	}{
		{
			name:     "empty string",
			value:    "",
			expected: false,
		},
		{
			name:     "missing prefix",
			value:    "550e8400e29b41d4a7164466554400001700000000",
			expected: false,
		},
		{
			name:     "prefix only",
			value:    "track_",
			expected: false,
		},
		{
			name:     "random part too short",
			value:    "track_abcdef",
			expected: false,
		},
		{
			name:     "non-hex random part",
			value:    "track_zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz1700000000",
			expected: false,
		},
		{
			name:     "well formed token",
			value:    "track_0123456789abcdef0123456789abcdef1700000000",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := token.IsTrackingToken(tt.value); got != tt.expected {
				t.Errorf("expected %v, got %v for %q", tt.expected, got, tt.value)
			}
		})
	}
}
