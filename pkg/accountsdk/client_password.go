package accountsdk

import (
	"context"
	"net/http"
)

// RequestPasswordOTP emails a reset code to email.
func (c *Client) RequestPasswordOTP(ctx context.Context, email string) (*OTPSentResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/password/otp", "", PasswordOTPRequest{Email: email})
	if err != nil {
		return nil, err
	}

	var out OTPSentResponse
	if err := decodeJSON(resp, &out, http.StatusAccepted); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyPasswordOTP exchanges the emailed code for a reset ticket.
func (c *Client) VerifyPasswordOTP(ctx context.Context, email, code string) (*TicketResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/password/verify", "", VerifyOTPRequest{Email: email, Code: code})
	if err != nil {
		return nil, err
	}

	var out TicketResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword sets a new password using a reset ticket.
func (c *Client) ResetPassword(ctx context.Context, req PasswordResetRequest) error {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/password/reset", "", req)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
