package domain

import "errors"

var (
	// ErrDuplicateIdentity is returned when the username or email is taken.
	ErrDuplicateIdentity = errors.New("username or email already exists")

	// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrOTPInvalid = errors.New("invalid OTP")
	ErrOTPExpired = errors.New("OTP expired")

	// ErrDeliveryFailure means the code was stored but could not be sent.
	ErrDeliveryFailure = errors.New("failed to send OTP")

	ErrNotFound = errors.New("account not found")

	ErrWeakPassword         = errors.New("password does not meet strength requirements")
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrMissingEmail         = errors.New("email is required")
	ErrMissingUsername      = errors.New("username is required")
	ErrConfirmationRequired = errors.New(`type "DELETE" to confirm`)
)

// ErrInvalidTicket is returned when a flow ticket or session token fails
// verification, is expired, or was minted for another step.
var ErrInvalidTicket = errors.New("ticket is invalid or expired")
