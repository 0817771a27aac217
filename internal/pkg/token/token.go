package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// NewResetToken generates a cryptographically random 64-character hex token
// and the digest that gets persisted in its place. The raw value is handed to
// the caller exactly once; only the digest is ever stored.
func NewResetToken() (raw, digest string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	raw = hex.EncodeToString(b)
	return raw, Digest(raw), nil
}

// Digest returns the hex-encoded SHA-256 digest of a raw token.
func Digest(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
