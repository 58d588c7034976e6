package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"autoecole/shared/timezone"
)

// Tracking tokens are opaque bearer credentials handed out on booking
// creation. Knowing the token is the only authentication the public
// tracking endpoint requires, so the random part must be unguessable.

const (
	trackingPrefix      = "track_"
	trackingRandomBytes = 16
)

// NewTrackingToken returns a fresh tracking token: the prefix, 32 hex
// characters of randomness, and the creation unix timestamp.
func NewTrackingToken() (string, error) {
	buf := make([]byte, trackingRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate tracking token: %w", err)
	}

	return fmt.Sprintf("%s%s%d", trackingPrefix, hex.EncodeToString(buf), timezone.Now().Unix()), nil
}

// IsTrackingToken reports whether the value has the shape of a tracking
// token. It is a cheap pre-filter so obviously malformed lookups can be
// rejected without a database round trip.
func IsTrackingToken(value string) bool {
	if !strings.HasPrefix(value, trackingPrefix) {
		return false
	}

	rest := value[len(trackingPrefix):]
	if len(rest) < trackingRandomBytes*2 {
		return false
	}

	if _, err := hex.DecodeString(rest[:trackingRandomBytes*2]); err != nil {
		return false
	}

	return true
}
