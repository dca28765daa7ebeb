package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/passageqa/internal/accounts/service"
	"github.com/aussiebroadwan/passageqa/pkg/accountsdk"
)

type LoginHandler struct {
	AccountService *service.AccountService
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Checks a username and password and returns a session token
//	@Tags			Sessions
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.LoginRequest		true	"username, password"
//	@Success		200		{object}	accountsdk.TokenResponse	"access_token, token_type, expires_in"
//	@Failure		401		{object}	accountsdk.ErrorResponse	"invalid_credentials"
//	@Failure		429		{object}	accountsdk.ErrorResponse	"rate_limit_exceeded"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	session, err := h.AccountService.Login(r.Context(), username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeSession(w, http.StatusOK, username, session)
}
