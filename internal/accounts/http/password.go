package http

import (
	"net/http"

	"github.com/aussiebroadwan/passageqa/internal/accounts/service"
	"github.com/aussiebroadwan/passageqa/pkg/accountsdk"
	"github.com/aussiebroadwan/passageqa/pkg/httpx"
)

type PasswordHandler struct {
	AccountService *service.AccountService
}

// HandleRequestOTP godoc
//
//	@Summary		Request Password Reset OTP
//	@Description	Emails a 6 digit reset code. The response does not reveal whether the email is registered
//	@Tags			Password
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.PasswordOTPRequest	true	"email"
//	@Success		202		{object}	accountsdk.OTPSentResponse		"otp_sent"
//	@Failure		400		{object}	accountsdk.ErrorResponse		"missing_email"
//	@Failure		429		{object}	accountsdk.ErrorResponse		"rate_limit_exceeded"
//	@Failure		502		{object}	accountsdk.ErrorResponse		"delivery_failed"
//	@Router			/v1/password/otp [post].
func (h *PasswordHandler) HandleRequestOTP(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.PasswordOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.AccountService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusAccepted, accountsdk.OTPSentResponse{
		OTPSent: true,
		Message: "OTP sent to your email",
	})
}

// HandleVerifyOTP godoc
//
//	@Summary		Verify Password Reset OTP
//	@Description	Consumes the emailed code and returns a reset ticket bound to the email
//	@Tags			Password
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.VerifyOTPRequest	true	"email, code"
//	@Success		200		{object}	accountsdk.TicketResponse	"ticket, expires_in"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"otp_invalid, otp_expired"
//	@Failure		429		{object}	accountsdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/v1/password/verify [post].
func (h *PasswordHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.VerifyOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ticket, err := h.AccountService.VerifyPasswordReset(r.Context(), req.Email, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeTicket(w, ticket)
}

// HandleReset godoc
//
//	@Summary		Reset Password
//	@Description	Sets a new password for the email bound by the reset ticket
//	@Tags			Password
//	@Accept			json
//	@Produce		json
//	@Param			request	body	accountsdk.PasswordResetRequest	true	"ticket, new_password, confirm_password"
//	@Success		204		"Password updated"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"password_mismatch, weak_password"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"invalid_ticket"
//	@Failure		404		{object}	accountsdk.ErrorResponse	"not_found"
//	@Router			/v1/password/reset [post].
func (h *PasswordHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.PasswordResetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.AccountService.ResetPassword(r.Context(), req.Ticket, req.NewPassword, req.ConfirmPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusNoContent)
}
