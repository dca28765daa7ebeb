package accounts_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/passageqa/pkg/accountsdk"
)

// TestSignupFlow walks a new user through request, verify and complete,
// then logs in with the new credentials.
func TestSignupFlow(t *testing.T) {
	svc := setupAccountsContainer(t)
	ctx := context.Background()

	email := uniqueEmail(t, "alice")
	session := signUp(t, svc, "alice", email)

	acct, err := svc.client.GetAccount(ctx, session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "alice", acct.Username)
	require.Equal(t, email, acct.Email)

	login, err := svc.client.Login(ctx, "alice", testPassword)
	require.NoError(t, err)
	assertSession(t, login, "alice")

	_, err = svc.client.Login(ctx, "alice", "Wr0ng!Pass")
	require.ErrorIs(t, err, accountsdk.ErrInvalidCredentials)
}

// TestSignupCodeIsSingleUse checks that a verified code cannot mint a
// second ticket.
func TestSignupCodeIsSingleUse(t *testing.T) {
	svc := setupAccountsContainer(t)
	ctx := context.Background()

	email := uniqueEmail(t, "bob")
	_, err := svc.client.RequestSignupOTP(ctx, accountsdk.SignupOTPRequest{
		Email:           email,
		Username:        "bob",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)

	code := latestCode(t, svc, email)

	_, err = svc.client.VerifySignupOTP(ctx, email, code)
	require.NoError(t, err)

	_, err = svc.client.VerifySignupOTP(ctx, email, code)
	require.ErrorIs(t, err, accountsdk.ErrOTPInvalid)
}

// TestSignupDuplicateIdentity checks that a second account cannot take an
// existing username or email.
func TestSignupDuplicateIdentity(t *testing.T) {
	svc := setupAccountsContainer(t)
	ctx := context.Background()

	signUp(t, svc, "carol", uniqueEmail(t, "carol"))

	other := uniqueEmail(t, "carol2")
	_, err := svc.client.RequestSignupOTP(ctx, accountsdk.SignupOTPRequest{
		Email:           other,
		Username:        "carol",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)

	ticket, err := svc.client.VerifySignupOTP(ctx, other, latestCode(t, svc, other))
	require.NoError(t, err)

	_, err = svc.client.CompleteSignup(ctx, accountsdk.SignupRequest{
		Ticket:          ticket.Ticket,
		Username:        "carol",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.ErrorIs(t, err, accountsdk.ErrDuplicateIdentity)
}

// TestSignupValidation checks the form errors returned before any code is sent.
func TestSignupValidation(t *testing.T) {
	svc := setupAccountsContainer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  accountsdk.SignupOTPRequest
		want error
	}{
		{
			name: "missing email",
			req:  accountsdk.SignupOTPRequest{Username: "dave", Password: testPassword, ConfirmPassword: testPassword},
			want: accountsdk.ErrMissingEmail,
		},
		{
			name: "mismatch",
			req:  accountsdk.SignupOTPRequest{Email: "dave@example.com", Username: "dave", Password: testPassword, ConfirmPassword: "x"},
			want: accountsdk.ErrPasswordMismatch,
		},
		{
			name: "weak",
			req:  accountsdk.SignupOTPRequest{Email: "dave@example.com", Username: "dave", Password: "password", ConfirmPassword: "password"},
			want: accountsdk.ErrWeakPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.client.RequestSignupOTP(ctx, tt.req)
			require.ErrorIs(t, err, tt.want)
		})
	}
}
