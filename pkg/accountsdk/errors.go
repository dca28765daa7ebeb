package accountsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/passageqa/pkg/httpx"
)

// Error codes carried in the "error" field of every error response.
const (
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeMissingEmail         = "missing_email"
	ErrorCodeMissingUsername      = "missing_username"
	ErrorCodePasswordMismatch     = "password_mismatch"
	ErrorCodeWeakPassword         = "weak_password"
	ErrorCodeOTPInvalid           = "otp_invalid"
	ErrorCodeOTPExpired           = "otp_expired"
	ErrorCodeDeliveryFailed       = "delivery_failed"
	ErrorCodeInvalidTicket        = "invalid_ticket"
	ErrorCodeDuplicateIdentity    = "duplicate_identity"
	ErrorCodeInvalidCredentials   = "invalid_credentials"
	ErrorCodeNotFound             = "not_found"
	ErrorCodeConfirmationRequired = "confirmation_required"
	ErrorCodeInvalidToken         = "invalid_token"
	ErrorCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrorCodeServerError          = "server_error"
)

// APIError is the JSON error body returned by the account service. The
// server writes it with WriteError; the client parses responses back into
// it, so errors.Is works against the predefined values on both sides.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Is matches on Code so a parsed response equals the predefined error with
// the same code.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// WriteError writes this error to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error:            e.Code,
		ErrorDescription: e.Description,
	})
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required fields",
	}

	ErrMissingEmail = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeMissingEmail,
		Description: "Please enter an email address",
	}

	ErrMissingUsername = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeMissingUsername,
		Description: "Please enter a username",
	}

	ErrPasswordMismatch = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodePasswordMismatch,
		Description: "Passwords do not match",
	}

	ErrWeakPassword = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeWeakPassword,
		Description: "Password must be at least 8 characters and contain an uppercase letter, " +
			"a lowercase letter, a digit and a special character",
	}

	ErrOTPInvalid = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeOTPInvalid,
		Description: "Invalid OTP",
	}

	ErrOTPExpired = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeOTPExpired,
		Description: "OTP expired",
	}

	// ErrDeliveryFailed means the code was stored but the email could not
	// be sent. The code stays valid until it expires.
	ErrDeliveryFailed = &APIError{
		StatusCode:  http.StatusBadGateway,
		Code:        ErrorCodeDeliveryFailed,
		Description: "Failed to send OTP",
	}

	ErrInvalidTicket = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidTicket,
		Description: "the ticket is missing, invalid or expired; verify the OTP again",
	}

	ErrDuplicateIdentity = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        ErrorCodeDuplicateIdentity,
		Description: "Username or email already exists",
	}

	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "Invalid username or password",
	}

	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "account not found",
	}

	ErrConfirmationRequired = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeConfirmationRequired,
		Description: "Confirmation text incorrect. Please type DELETE to confirm.",
	}

	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the session token is missing, invalid or expired",
	}

	ErrRateLimitExceeded = &APIError{
		StatusCode:  http.StatusTooManyRequests,
		Code:        ErrorCodeRateLimitExceeded,
		Description: "Too many requests. Please try again later.",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	ErrMethodNotAllowed = &APIError{
		StatusCode:  http.StatusMethodNotAllowed,
		Code:        ErrorCodeInvalidRequest,
		Description: "method not allowed",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	// Bearer failures come back as a bare 401 with WWW-Authenticate
	if resp.StatusCode == http.StatusUnauthorized {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        ErrorCodeInvalidToken,
			Description: ErrInvalidToken.Description,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
