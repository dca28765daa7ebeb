package domain

import "time"

// OTPLength is the number of decimal digits in an issued code.
const OTPLength = 6

// OTPEntry is the single live code for an email address.
type OTPEntry struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the entry is past its expiry at now. The expiry
// instant itself is still valid.
func (e OTPEntry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// OTPOutcome is the result of checking a submitted code.
type OTPOutcome string

const (
	OTPVerified OTPOutcome = "verified"
	OTPInvalid  OTPOutcome = "invalid"
	OTPExpired  OTPOutcome = "expired"
)

// Message is the user facing text for the outcome.
func (o OTPOutcome) Message() string {
	switch o {
	case OTPVerified:
		return "OTP verified"
	case OTPExpired:
		return "OTP expired"
	default:
		return "Invalid OTP"
	}
}

// Err maps a failed outcome to its sentinel, or nil when verified.
func (o OTPOutcome) Err() error {
	switch o {
	case OTPVerified:
		return nil
	case OTPExpired:
		return ErrOTPExpired
	default:
		return ErrOTPInvalid
	}
}
