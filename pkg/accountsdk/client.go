package accountsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client talks to the passageqa account service. It holds no session
// state: tickets and tokens are returned to the caller, who passes them
// back on the next step.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client with a 10 second request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
