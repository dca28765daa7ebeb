package accountsdk

import (
	"context"
	"net/http"
)

// RequestSignupOTP validates the signup form and emails a code.
func (c *Client) RequestSignupOTP(ctx context.Context, req SignupOTPRequest) (*OTPSentResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/signup/otp", "", req)
	if err != nil {
		return nil, err
	}

	var out OTPSentResponse
	if err := decodeJSON(resp, &out, http.StatusAccepted); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifySignupOTP exchanges the emailed code for a signup ticket.
func (c *Client) VerifySignupOTP(ctx context.Context, email, code string) (*TicketResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/signup/verify", "", VerifyOTPRequest{Email: email, Code: code})
	if err != nil {
		return nil, err
	}

	var out TicketResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteSignup creates the account and returns a session token.
func (c *Client) CompleteSignup(ctx context.Context, req SignupRequest) (*TokenResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/signup", "", req)
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}
