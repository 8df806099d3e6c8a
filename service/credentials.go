package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

const tokenBytes = 32

// mintID returns a fresh 128-bit random identifier in canonical UUID form.
func mintID() string {
	return uuid.NewString()
}

// mintToken returns a fresh 256-bit random opaque credential.
func mintToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// SecretsEqual compares two secrets in constant time. Both sides are
// hashed first so the comparison does not leak length either.
func SecretsEqual(a, b string) bool {
	ha := sha256.Sum256([]byte(a))
	hb := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(ha[:], hb[:]) == 1
}
