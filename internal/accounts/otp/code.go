package otp

import (
	"fmt"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"

	"github.com/aussiebroadwan/passageqa/pkg/cryptox"
)

var hotpOpts = hotp.ValidateOpts{
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// GenerateCode returns a fresh 6 digit numeric code. Every call draws a new
// random HOTP secret, so the counter never has to advance.
func GenerateCode() (string, error) {
	secret, err := cryptox.GenerateSecret(cryptox.SecretSize)
	if err != nil {
		return "", err
	}

	code, err := hotp.GenerateCodeCustom(secret, 0, hotpOpts)
	if err != nil {
		return "", fmt.Errorf("otp: generate code: %w", err)
	}
	return code, nil
}
