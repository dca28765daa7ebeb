package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/passageqa/internal/accounts/domain"
	"github.com/aussiebroadwan/passageqa/internal/accounts/service"
	"github.com/aussiebroadwan/passageqa/pkg/accountsdk"
	"github.com/aussiebroadwan/passageqa/pkg/httpx"
)

type SignupHandler struct {
	AccountService *service.AccountService
}

// HandleRequestOTP godoc
//
//	@Summary		Request Signup OTP
//	@Description	Validates the signup form and emails a 6 digit code valid for 5 minutes
//	@Description	The code is stored before delivery; a 502 means it exists but the email was not sent
//	@Tags			Signup
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.SignupOTPRequest	true	"email, username, password, confirm_password"
//	@Success		202		{object}	accountsdk.OTPSentResponse	"otp_sent"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"missing_email, password_mismatch, weak_password"
//	@Failure		429		{object}	accountsdk.ErrorResponse	"rate_limit_exceeded"
//	@Failure		502		{object}	accountsdk.ErrorResponse	"delivery_failed"
//	@Router			/v1/signup/otp [post].
func (h *SignupHandler) HandleRequestOTP(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.SignupOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.AccountService.RequestSignupOTP(r.Context(), service.SignupRequest{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
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
//	@Summary		Verify Signup OTP
//	@Description	Consumes the emailed code and returns a signup ticket bound to the email
//	@Tags			Signup
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.VerifyOTPRequest	true	"email, code"
//	@Success		200		{object}	accountsdk.TicketResponse	"ticket, expires_in"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"otp_invalid, otp_expired"
//	@Failure		429		{object}	accountsdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/v1/signup/verify [post].
func (h *SignupHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.VerifyOTPRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ticket, err := h.AccountService.VerifySignupOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeTicket(w, ticket)
}

// HandleComplete godoc
//
//	@Summary		Complete Signup
//	@Description	Creates the account for the email bound by the signup ticket and returns a session token
//	@Tags			Signup
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.SignupRequest	true	"ticket, username, password, confirm_password"
//	@Success		201		{object}	accountsdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"password_mismatch, weak_password"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"invalid_ticket"
//	@Failure		409		{object}	accountsdk.ErrorResponse	"duplicate_identity"
//	@Router			/v1/signup [post].
func (h *SignupHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.SignupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	session, err := h.AccountService.CompleteSignup(r.Context(), req.Ticket, username, req.Password, req.ConfirmPassword)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSession(w, http.StatusCreated, username, session)
}

func writeTicket(w http.ResponseWriter, ticket domain.IssuedToken) {
	httpx.WriteJSON(w, http.StatusOK, accountsdk.TicketResponse{
		Ticket:    ticket.Value,
		ExpiresIn: ticket.ExpiresIn(time.Now()),
		Message:   domain.OTPVerified.Message(),
	})
}

func writeSession(w http.ResponseWriter, status int, username string, session domain.IssuedToken) {
	httpx.WriteJSON(w, status, accountsdk.TokenResponse{
		AccessToken: session.Value,
		TokenType:   "Bearer",
		ExpiresIn:   session.ExpiresIn(time.Now()),
		Username:    username,
	})
}
