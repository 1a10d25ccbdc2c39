package client

import (
	internalhttp "github.com/passforge-io/passforge-go/internal/http"
)

// NewTestClient creates a new test client with the given base URL.
func NewTestClient(baseURL string) *Client {
	// Create HTTP client without key manager for testing
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
	}

	client.initializeResourceClients()

	return client
}
