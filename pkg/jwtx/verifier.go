package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrUnknownKID  = errors.New("jwtx: unknown kid")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrPurpose     = errors.New("jwtx: purpose mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string, purpose Purpose) (Claims, error)
}

// EdDSAVerifier validates tokens signed by an EdDSASigner.
type EdDSAVerifier struct {
	keys   map[string]ed25519.PublicKey
	issuer string
	leeway time.Duration

	// Now is the clock used for exp/nbf checks. Tests may replace it.
	Now func() time.Time
}

// NewVerifierEdDSA creates a verifier that trusts the given signers' keys.
func NewVerifierEdDSA(issuer string, leeway time.Duration, signers ...*EdDSASigner) *EdDSAVerifier {
	keys := make(map[string]ed25519.PublicKey, len(signers))
	for _, s := range signers {
		keys[s.KID()] = s.Public()
	}
	return &EdDSAVerifier{
		keys:   keys,
		issuer: issuer,
		leeway: leeway,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// Verify validates the token signature and its claims, including purpose.
func (v *EdDSAVerifier) Verify(tokenStr string, purpose Purpose) (Claims, error) {
	// Expiry is checked below against our own clock
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("jwtx: missing kid")
		}

		pub, ok := v.keys[kid]
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownKID, kid)
		}
		return pub, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrMalformed
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidatePurpose(purpose); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(v.Now(), v.leeway); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
