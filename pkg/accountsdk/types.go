package accountsdk

// ErrorResponse is the wire form of an APIError.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Signup
// ============================================================================

// SignupOTPRequest is the first signup step. The password is checked here
// and must be sent again with the ticket in SignupRequest.
type SignupOTPRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SignupRequest completes signup with the ticket from VerifySignupOTP.
type SignupRequest struct {
	Ticket          string `json:"ticket"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ============================================================================
// OTP
// ============================================================================

// VerifyOTPRequest submits the emailed code.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// OTPSentResponse is returned once a code has been stored and delivered.
type OTPSentResponse struct {
	OTPSent bool   `json:"otp_sent"`
	Message string `json:"message"`
}

// TicketResponse carries a short lived ticket proving an email passed OTP
// verification.
type TicketResponse struct {
	Ticket    string `json:"ticket"`
	ExpiresIn int64  `json:"expires_in"`
	Message   string `json:"message"`
}

// ============================================================================
// Password reset
// ============================================================================

// PasswordOTPRequest starts a password reset.
type PasswordOTPRequest struct {
	Email string `json:"email"`
}

// PasswordResetRequest sets the new password with the ticket from
// VerifyPasswordOTP.
type PasswordResetRequest struct {
	Ticket          string `json:"ticket"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ============================================================================
// Sessions and accounts
// ============================================================================

// LoginRequest authenticates with a username and password.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries a session token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int64 `json:"expires_in"`

	Username string `json:"username"`
}

// AccountResponse describes the session holder.
type AccountResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// DeleteAccountRequest must carry the literal "DELETE".
type DeleteAccountRequest struct {
	Confirm string `json:"confirm"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime,omitempty"`
	Version string `json:"version,omitempty"`

	// Checks holds per dependency results, only for /readyz.
	Checks map[string]string `json:"checks,omitempty"`
}
