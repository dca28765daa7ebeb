package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Configuration for PBKDF2-HMAC-SHA256 hashing. Changing any of these breaks
// verification of hashes already stored in the users table.
const (
	iterations = 100_000 // Iteration count
	keyLength  = 32      // Length of the derived key (SHA-256 output size)
	saltLength = 16      // Length of the salt

	// SaltHexLength is the width of the salt prefix in an encoded hash.
	SaltHexLength = saltLength * 2

	// EncodedHashLength is the full width of an encoded hash.
	EncodedHashLength = SaltHexLength + keyLength*2
)

var ErrMalformedHash = errors.New("cryptox: malformed password hash")

// HashPassword derives a key from password with a fresh random salt and
// returns hex(salt) followed by hex(derivedKey).
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: failed to generate salt: %w", err)
	}
	return encode(password, salt), nil
}

// HashPasswordWithSalt is HashPassword with a caller supplied salt given as
// 32 hex characters. It is what VerifyPassword uses to recompute a hash.
func HashPasswordWithSalt(password, saltHex string) (string, error) {
	if len(saltHex) != SaltHexLength {
		return "", ErrMalformedHash
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	return encode(password, salt), nil
}

// VerifyPassword reports whether password matches encodedHash. Anything that
// is not a well formed hash never matches.
func VerifyPassword(encodedHash, password string) bool {
	if len(encodedHash) != EncodedHashLength {
		return false
	}

	computed, err := HashPasswordWithSalt(password, encodedHash[:SaltHexLength])
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(
		[]byte(computed[SaltHexLength:]),
		[]byte(encodedHash[SaltHexLength:]),
	) == 1
}

func encode(password string, salt []byte) string {
	dk := pbkdf2.Key([]byte(password), salt, iterations, keyLength, sha256.New)
	return hex.EncodeToString(salt) + hex.EncodeToString(dk)
}
