package http

import (
	"net/http"

	"github.com/aussiebroadwan/passageqa/internal/accounts/service"
	"github.com/aussiebroadwan/passageqa/pkg/accountsdk"
	"github.com/aussiebroadwan/passageqa/pkg/httpx"
)

type AccountHandler struct {
	AccountService *service.AccountService
}

// HandleGet godoc
//
//	@Summary		Get Account
//	@Description	Returns the username and email of the session holder
//	@Tags			Account
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	accountsdk.AccountResponse	"username, email"
//	@Failure		401	"missing or invalid session token"
//	@Failure		404	{object}	accountsdk.ErrorResponse	"not_found"
//	@Router			/v1/account [get].
func (h *AccountHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	u, err := h.AccountService.GetAccount(ctx, httpx.UsernameFromContext(ctx))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, accountsdk.AccountResponse{
		Username: u.Username,
		Email:    u.Email,
	})
}

// HandleDelete godoc
//
//	@Summary		Delete Account
//	@Description	Permanently deletes the session holder's account. The body must confirm with the literal DELETE
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body	accountsdk.DeleteAccountRequest	true	"confirm"
//	@Success		204		"Account deleted"
//	@Failure		400		{object}	accountsdk.ErrorResponse	"confirmation_required"
//	@Failure		401		"missing or invalid session token"
//	@Failure		404		{object}	accountsdk.ErrorResponse	"not_found"
//	@Router			/v1/account [delete].
func (h *AccountHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accountsdk.DeleteAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.AccountService.DeleteAccount(ctx, httpx.UsernameFromContext(ctx), req.Confirm); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
