// Package client provides the concrete implementation of passforge.Client.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/passforge-io/passforge-go/internal/auth"
	"github.com/passforge-io/passforge-go/internal/constants"
	"github.com/passforge-io/passforge-go/internal/http"
	"github.com/passforge-io/passforge-go/pkg/passforge"
)

// Static errors for err113 compliance.
var (
	ErrAPIEndpointRequired = errors.New("API endpoint is required")
)

// Client implements the passforge.Client interface.
type Client struct {
	config     *passforge.Config
	httpClient *http.Client
	keyManager auth.KeyManager

	// Resource clients
	passwords passforge.PasswordsClient
	team      passforge.TeamClient
}

// New creates a new PassForge API client from a resolved configuration. The
// endpoint must already be set; resolution against the environment happens in
// pkg/pfclient.
func New(ctx context.Context, config *passforge.Config) (*Client, error) {
	if config == nil {
		return nil, passforge.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	err := validateAPIKey(config.APIKey)
	if err != nil {
		return nil, err
	}

	keyManager := auth.NewStaticKeyManager(config.APIKey)

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		config:     config,
		httpClient: http.NewClient(config.APIEndpoint, keyManager, httpOpts...),
		keyManager: keyManager,
	}

	client.initializeResourceClients()

	return client, nil
}

// validateAPIKey rejects keys the service could never accept.
func validateAPIKey(key string) error {
	if len(key) < constants.MinAPIKeyLength {
		return fmt.Errorf("%w: must be at least %d characters", passforge.ErrInvalidCredential, constants.MinAPIKeyLength)
	}

	return nil
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *passforge.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(&loggerAdapter{logger: config.Logger}))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if len(config.Headers) > 0 {
		httpOpts = append(httpOpts, http.WithHeaders(config.Headers))
	}

	chain, err := buildInterceptorChain(config)
	if err != nil {
		return nil, err
	}

	if chain != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(chain))
	}

	return httpOpts, nil
}

// buildInterceptorChain assembles rate limiting and caching when configured.
func buildInterceptorChain(config *passforge.Config) (*passforge.InterceptorChain, error) {
	if config.RequestsPerSecond <= 0 && config.Cache == nil {
		return nil, nil
	}

	chain := passforge.NewInterceptorChain()

	if config.RequestsPerSecond > 0 {
		chain.AddRequestInterceptor(passforge.RateLimitInterceptor(config.RequestsPerSecond))
	}

	if config.Cache != nil {
		cache, err := passforge.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("building cache: %w", err)
		}

		manager := passforge.NewCacheManager(cache, nil)
		passforge.ConfigureSmartCache(chain, manager, nil)
	}

	return chain, nil
}

// GetUsage implements passforge.Client.GetUsage.
func (c *Client) GetUsage(ctx context.Context) (*passforge.Usage, error) {
	resp, err := c.httpClient.Get(ctx, "/user", nil)
	if err != nil {
		return nil, fmt.Errorf("getting usage: %w", err)
	}

	var usage passforge.Usage

	err = decodeResponse(resp, &usage)
	if err != nil {
		return nil, fmt.Errorf("parsing usage response: %w", err)
	}

	return &usage, nil
}

// TestConnection implements passforge.Client.TestConnection. It reports
// reachability through the returned status and never fails.
func (c *Client) TestConnection(ctx context.Context) *passforge.ConnectionStatus {
	resp, err := c.httpClient.Get(ctx, "/test", nil)
	if err != nil {
		return &passforge.ConnectionStatus{
			Success: false,
			Message: err.Error(),
		}
	}

	status := &passforge.ConnectionStatus{
		Success: true,
		Message: "connection successful",
	}

	var data map[string]interface{}
	if json.Unmarshal(resp.Body, &data) == nil {
		status.Data = data
	}

	return status
}

// Resource client accessors

// Passwords implements passforge.Client.Passwords.
func (c *Client) Passwords() passforge.PasswordsClient {
	return c.passwords
}

// Team implements passforge.Client.Team.
func (c *Client) Team() passforge.TeamClient {
	return c.team
}

// GetKey returns the current API key from the key manager.
func (c *Client) GetKey(ctx context.Context) (string, error) {
	key, err := c.keyManager.GetKey(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get key: %w", err)
	}

	return key, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.passwords = NewPasswordsClient(c.httpClient)
	c.team = NewTeamClient(c.httpClient)
}

// decodeResponse unmarshals a success body, normalizing decode failures so
// callers can detect them with passforge.IsParseError.
func decodeResponse(resp *http.Response, out interface{}) error {
	err := json.Unmarshal(resp.Body, out)
	if err != nil {
		return &passforge.ParseError{Err: err}
	}

	return nil
}

// loggerAdapter adapts passforge.Logger to http.Logger.
type loggerAdapter struct {
	logger passforge.Logger
}

func (l *loggerAdapter) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug(msg, fields)
}

func (l *loggerAdapter) Info(msg string, fields map[string]interface{}) {
	l.logger.Info(msg, fields)
}

func (l *loggerAdapter) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn(msg, fields)
}

func (l *loggerAdapter) Error(msg string, fields map[string]interface{}) {
	l.logger.Error(msg, fields)
}
