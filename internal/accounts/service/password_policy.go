package service

import (
	"strings"
	"unicode"

	"github.com/aussiebroadwan/passageqa/internal/accounts/domain"
)

const (
	// MinPasswordLength is the shortest password accepted at signup or reset.
	MinPasswordLength = 8

	// PasswordSpecials lists the characters that satisfy the special
	// character rule.
	PasswordSpecials = `!@#$%^&*(),.?":{}|<>`

	// DeleteConfirmation must be typed verbatim to delete an account.
	DeleteConfirmation = "DELETE"
)

// ValidatePasswordStrength rejects passwords shorter than MinPasswordLength
// or missing an ASCII uppercase letter, lowercase letter, digit or one of
// PasswordSpecials.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return domain.ErrWeakPassword
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r < unicode.MaxASCII && unicode.IsUpper(r):
			upper = true
		case r < unicode.MaxASCII && unicode.IsLower(r):
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSpecials, r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return domain.ErrWeakPassword
	}
	return nil
}

// validateNewPassword checks confirmation first, then strength.
func validateNewPassword(password, confirm string) error {
	if password != confirm {
		return domain.ErrPasswordMismatch
	}
	return ValidatePasswordStrength(password)
}
