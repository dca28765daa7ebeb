package accountsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPIError_Is(t *testing.T) {
	t.Parallel()

	parsed := &APIError{StatusCode: http.StatusBadRequest, Code: ErrorCodeOTPExpired, Description: "whatever"}
	require.ErrorIs(t, parsed, ErrOTPExpired)
	require.NotErrorIs(t, parsed, ErrOTPInvalid)
	require.False(t, errors.Is(parsed, errors.New(ErrorCodeOTPExpired)))
}

func TestAPIError_WriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	ErrDuplicateIdentity.WriteError(rec)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, ErrorCodeDuplicateIdentity, body.Error)
	require.Equal(t, "Username or email already exists", body.ErrorDescription)
}

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{"api error", http.StatusBadRequest, `{"error":"otp_invalid","error_description":"Invalid OTP"}`, ErrorCodeOTPInvalid},
		{"bare 401", http.StatusUnauthorized, ``, ErrorCodeInvalidToken},
		{"non json 500", http.StatusInternalServerError, `oops`, ErrorCodeServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErrorResponse(&http.Response{StatusCode: tt.status}, []byte(tt.body))
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.wantCode, apiErr.Code)
			require.Equal(t, tt.status, apiErr.StatusCode)
		})
	}

	require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
}

func TestClient_SignupCalls(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/signup/otp", func(w http.ResponseWriter, r *http.Request) {
		var req SignupOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		if req.Password != req.ConfirmPassword {
			ErrPasswordMismatch.WriteError(w)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(OTPSentResponse{OTPSent: true, Message: "OTP sent to your email"})
	})
	mux.HandleFunc("POST /v1/signup/verify", func(w http.ResponseWriter, r *http.Request) {
		var req VerifyOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Code != "123456" {
			ErrOTPInvalid.WriteError(w)
			return
		}
		_ = json.NewEncoder(w).Encode(TicketResponse{Ticket: "t1", ExpiresIn: 600})
	})
	mux.HandleFunc("POST /v1/signup", func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "t1", req.Ticket)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(TokenResponse{AccessToken: "s1", TokenType: "Bearer", ExpiresIn: 60, Username: req.Username})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL + "/")
	ctx := context.Background()

	_, err := client.RequestSignupOTP(ctx, SignupOTPRequest{Email: "a@x.io", Username: "a", Password: "x", ConfirmPassword: "y"})
	require.ErrorIs(t, err, ErrPasswordMismatch)

	sent, err := client.RequestSignupOTP(ctx, SignupOTPRequest{Email: "a@x.io", Username: "a", Password: "x", ConfirmPassword: "x"})
	require.NoError(t, err)
	require.True(t, sent.OTPSent)

	_, err = client.VerifySignupOTP(ctx, "a@x.io", "000000")
	require.ErrorIs(t, err, ErrOTPInvalid)

	ticket, err := client.VerifySignupOTP(ctx, "a@x.io", "123456")
	require.NoError(t, err)
	require.Equal(t, "t1", ticket.Ticket)

	tok, err := client.CompleteSignup(ctx, SignupRequest{Ticket: ticket.Ticket, Username: "a", Password: "x", ConfirmPassword: "x"})
	require.NoError(t, err)
	require.Equal(t, "s1", tok.AccessToken)
	require.Equal(t, "a", tok.Username)
}

func TestClient_AccountCalls(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/account", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(AccountResponse{Username: "alice", Email: "alice@example.com"})
	})
	mux.HandleFunc("DELETE /v1/account", func(w http.ResponseWriter, r *http.Request) {
		var req DeleteAccountRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Confirm != "DELETE" {
			ErrConfirmationRequired.WriteError(w)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL)
	ctx := context.Background()

	acct, err := client.GetAccount(ctx, "good")
	require.NoError(t, err)
	require.Equal(t, "alice", acct.Username)

	_, err = client.GetAccount(ctx, "bad")
	require.ErrorIs(t, err, ErrInvalidToken)

	require.ErrorIs(t, client.DeleteAccount(ctx, "good", "nope"), ErrConfirmationRequired)
	require.NoError(t, client.DeleteAccount(ctx, "good", "DELETE"))

	health, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", health.Status)
}
