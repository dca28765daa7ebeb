package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aussiebroadwan/passageqa/pkg/idx"
)

// Purpose scopes a token to the one step of an account flow it was minted for.
type Purpose string

const (
	// PurposeSignup is carried by a ticket proving an email passed OTP
	// verification and may now complete registration.
	PurposeSignup Purpose = "signup"

	// PurposeReset is carried by a ticket proving an email passed OTP
	// verification and may now set a new password.
	PurposeReset Purpose = "reset"

	// PurposeSession is carried by a logged in user's bearer token.
	PurposeSession Purpose = "session"
)

// Default lifetimes. Tickets only need to survive one form submission.
const (
	DefaultTicketTTL  = 10 * time.Minute
	DefaultSessionTTL = 24 * time.Hour
)

// Claims are the token claims minted by the account service.
type Claims struct {
	jwt.RegisteredClaims

	// Purpose of the token, checked on every verification.
	Purpose Purpose `json:"purpose"`

	// Email bound by a signup or reset ticket.
	Email string `json:"email,omitempty"`

	// Username of the session holder.
	Username string `json:"username,omitempty"`
}

// NewTicketClaims builds claims for a signup or reset ticket bound to email.
func NewTicketClaims(purpose Purpose, email string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: registered(email, ttl, issuer, now),
		Purpose:          purpose,
		Email:            email,
	}
}

// NewSessionClaims builds claims for a logged in user.
func NewSessionClaims(username string, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: registered(username, ttl, issuer, now),
		Purpose:          PurposeSession,
		Username:         username,
	}
}

func registered(subject string, ttl time.Duration, issuer string, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        idx.New().String(),
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidatePurpose rejects a token minted for a different flow step.
func (c *Claims) ValidatePurpose(expected Purpose) error {
	if c.Purpose != expected {
		return ErrPurpose
	}
	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf,
// allowing leeway for clock skew.
func (c *Claims) ValidateExpiry(now time.Time, leeway time.Duration) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
