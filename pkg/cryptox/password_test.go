package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			require.Len(t, hash, EncodedHashLength)

			// Whole thing should be lowercase hex
			_, err = hex.DecodeString(hash)
			require.NoError(t, err)

			require.True(t, VerifyPassword(hash, tt.password))
		})
	}
}

func TestHashPassword_UniqueSalts(t *testing.T) {
	password := "samepassword"

	hash1, err := HashPassword(password)
	require.NoError(t, err)

	hash2, err := HashPassword(password)
	require.NoError(t, err)

	hash3, err := HashPassword(password)
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2, "hashes should differ due to unique salts")
	require.NotEqual(t, hash2, hash3, "hashes should differ due to unique salts")
	require.NotEqual(t, hash1, hash3, "hashes should differ due to unique salts")

	require.True(t, VerifyPassword(hash1, password))
	require.True(t, VerifyPassword(hash2, password))
	require.True(t, VerifyPassword(hash3, password))
}

func TestHashPasswordWithSalt_Deterministic(t *testing.T) {
	salt := strings.Repeat("ab", saltLength)

	a, err := HashPasswordWithSalt("Str0ng!Pw", salt)
	require.NoError(t, err)
	b, err := HashPasswordWithSalt("Str0ng!Pw", salt)
	require.NoError(t, err)

	require.Equal(t, a, b)
	require.True(t, strings.HasPrefix(a, salt), "salt hex must prefix the encoded hash")
}

// The encoding has to stay byte compatible with hashes written by the
// previous deployment, so pin it against a direct PBKDF2 computation.
func TestHashPasswordWithSalt_Layout(t *testing.T) {
	saltBytes := []byte("0123456789abcdef")
	saltHex := hex.EncodeToString(saltBytes)

	got, err := HashPasswordWithSalt("Str0ng!Pw", saltHex)
	require.NoError(t, err)

	dk := pbkdf2.Key([]byte("Str0ng!Pw"), saltBytes, 100000, 32, sha256.New)
	require.Equal(t, saltHex+hex.EncodeToString(dk), got)
}

func TestHashPasswordWithSalt_InvalidSalt(t *testing.T) {
	tests := []struct {
		name string
		salt string
	}{
		{"empty", ""},
		{"too short", "abcd"},
		{"not hex", strings.Repeat("zz", saltLength)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HashPasswordWithSalt("pw", tt.salt)
			require.ErrorIs(t, err, ErrMalformedHash)
		})
	}
}

func TestVerifyPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name          string
		wrongPassword string
	}{
		{"completely wrong", "wrong-password"},
		{"case difference", "Correct-Password"},
		{"extra space", "correct-password "},
		{"empty password", ""},
		{"similar password", "correct-passwor"},
		{"very long", strings.Repeat("x", 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, VerifyPassword(hash, tt.wrongPassword))
		})
	}
}

func TestVerifyPassword_InvalidHashFormat(t *testing.T) {
	tests := []struct {
		name        string
		invalidHash string
	}{
		{"empty hash", ""},
		{"argon2 phc string", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"salt only", strings.Repeat("a", SaltHexLength)},
		{"non hex salt", strings.Repeat("g", SaltHexLength) + strings.Repeat("a", 64)},
		{"truncated key", strings.Repeat("a", EncodedHashLength-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.False(t, VerifyPassword(tt.invalidHash, "test-password"))
		})
	}
}
