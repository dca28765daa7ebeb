package accountsdk

import (
	"context"
	"net/http"
)

// Login returns a session token for username.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/login", "", LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAccount describes the holder of accessToken.
func (c *Client) GetAccount(ctx context.Context, accessToken string) (*AccountResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodGet, "/v1/account", accessToken, nil)
	if err != nil {
		return nil, err
	}

	var out AccountResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount removes the holder of accessToken. confirm must be "DELETE".
func (c *Client) DeleteAccount(ctx context.Context, accessToken, confirm string) error {
	resp, err := c.doJSON(ctx, http.MethodDelete, "/v1/account", accessToken, DeleteAccountRequest{Confirm: confirm})
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
