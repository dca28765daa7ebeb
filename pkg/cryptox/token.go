package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/base64"
	"fmt"
)

// SecretSize is the HOTP secret length recommended by RFC 4226 (160 bits).
const SecretSize = 20

// GenerateSecret returns size random bytes encoded as unpadded base32, the
// form HOTP key material is exchanged in.
func GenerateSecret(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("secret size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random secret: %w", err)
	}

	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf), nil
}

// FingerprintToken returns a deterministic SHA-256 fingerprint of a value as
// base64url (43 chars). Logs carry fingerprints of emails instead of the
// addresses themselves.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
