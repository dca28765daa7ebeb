package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/passageqa/internal/accounts/domain"
	"github.com/aussiebroadwan/passageqa/pkg/accountsdk"
	"github.com/aussiebroadwan/passageqa/pkg/httpx"
	"github.com/aussiebroadwan/passageqa/pkg/slogx"
)

var serviceErrors = []struct {
	err error
	api *accountsdk.APIError
}{
	{domain.ErrMissingEmail, accountsdk.ErrMissingEmail},
	{domain.ErrMissingUsername, accountsdk.ErrMissingUsername},
	{domain.ErrPasswordMismatch, accountsdk.ErrPasswordMismatch},
	{domain.ErrWeakPassword, accountsdk.ErrWeakPassword},
	{domain.ErrOTPInvalid, accountsdk.ErrOTPInvalid},
	{domain.ErrOTPExpired, accountsdk.ErrOTPExpired},
	{domain.ErrDeliveryFailure, accountsdk.ErrDeliveryFailed},
	{domain.ErrInvalidTicket, accountsdk.ErrInvalidTicket},
	{domain.ErrDuplicateIdentity, accountsdk.ErrDuplicateIdentity},
	{domain.ErrInvalidCredentials, accountsdk.ErrInvalidCredentials},
	{domain.ErrNotFound, accountsdk.ErrNotFound},
	{domain.ErrConfirmationRequired, accountsdk.ErrConfirmationRequired},
}

// writeServiceError maps a service error onto its API error. Anything
// unrecognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			m.api.WriteError(w)
			return
		}
	}

	slogx.FromContext(r.Context()).Error("request failed", "error", err)
	accountsdk.ErrServerError.WriteError(w)
}

// decodeBody decodes a JSON body, writing invalid_request on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		slogx.FromContext(r.Context()).Debug("bad request body", "error", err)
		accountsdk.ErrInvalidRequest.WriteError(w)
		return false
	}
	return true
}
