package pfclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/passforge-io/passforge-go/internal/client"
	"github.com/passforge-io/passforge-go/pkg/passforge"
)

// Endpoint resolution sources, in order of precedence after the explicit
// Config.APIEndpoint value.
const (
	// DefaultAPIEndpoint is the production PassForge API.
	DefaultAPIEndpoint = "https://api.passforge.io/v1"

	// EndpointEnvVar names the environment variable consulted when no
	// explicit endpoint is configured.
	EndpointEnvVar = "PASSFORGE_API_ENDPOINT"

	// APIKeyEnvVar names the environment variable NewFromEnv reads the API
	// key from.
	APIKeyEnvVar = "PASSFORGE_API_KEY"
)

// New creates a new PassForge API client using the provided configuration.
//
// The API endpoint is resolved in order: the explicit Config.APIEndpoint,
// the PASSFORGE_API_ENDPOINT environment variable, then DefaultAPIEndpoint.
// The caller's config is not modified.
func New(ctx context.Context, config *passforge.Config) (passforge.Client, error) {
	if config == nil {
		return nil, passforge.ErrConfigRequired
	}

	resolved := *config
	resolved.APIEndpoint = normalizeEndpoint(resolveEndpoint(config.APIEndpoint))

	pfClient, err := client.New(ctx, &resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return pfClient, nil
}

// NewWithKey creates a client with just an API key. The endpoint comes from
// the environment or the production default.
func NewWithKey(ctx context.Context, apiKey string) (passforge.Client, error) {
	return New(ctx, &passforge.Config{
		APIKey: apiKey,
	})
}

// NewWithEndpoint creates a client for a specific endpoint, bypassing the
// environment lookup.
func NewWithEndpoint(ctx context.Context, endpoint, apiKey string) (passforge.Client, error) {
	return New(ctx, &passforge.Config{
		APIEndpoint: endpoint,
		APIKey:      apiKey,
	})
}

// NewFromEnv creates a client configured entirely from the environment, using
// PASSFORGE_API_KEY and, when set, PASSFORGE_API_ENDPOINT.
func NewFromEnv(ctx context.Context) (passforge.Client, error) {
	return New(ctx, &passforge.Config{
		APIKey: os.Getenv(APIKeyEnvVar),
	})
}

// resolveEndpoint picks the first configured endpoint source.
func resolveEndpoint(override string) string {
	if override != "" {
		return override
	}

	if env := os.Getenv(EndpointEnvVar); env != "" {
		return env
	}

	return DefaultAPIEndpoint
}

// normalizeEndpoint trims trailing slashes and defaults the scheme to HTTPS.
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(endpoint, "/")

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
