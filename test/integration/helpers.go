//go:build integration

package integration

import (
	"context"
	"os"
	"testing"

	"github.com/passforge-io/passforge-go/pkg/passforge"
	"github.com/passforge-io/passforge-go/pkg/pfclient"
	"github.com/stretchr/testify/require"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIKey   string
	Endpoint string
	TeamID   string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIKey:   os.Getenv("PASSFORGE_API_KEY"),
		Endpoint: os.Getenv("PASSFORGE_API_ENDPOINT"),
		TeamID:   os.Getenv("PASSFORGE_TEAM_ID"),
		Verbose:  os.Getenv("PASSFORGE_VERBOSE") == "true",
	}
}

// SkipIfMissingConfig skips the test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIKey == "" {
		t.Skip("PASSFORGE_API_KEY not set, skipping integration test")
	}
}

// SkipIfMissingTeam skips the test if no team is configured
func (config *TestConfig) SkipIfMissingTeam(t *testing.T) {
	t.Helper()

	config.SkipIfMissingConfig(t)

	if config.TeamID == "" {
		t.Skip("PASSFORGE_TEAM_ID not set, skipping team integration test")
	}
}

// NewIntegrationClient builds a client against the configured endpoint
func (config *TestConfig) NewIntegrationClient(t *testing.T) passforge.Client {
	t.Helper()

	clientConfig := &passforge.Config{
		APIKey:      config.APIKey,
		APIEndpoint: config.Endpoint,
		Debug:       config.Verbose,
	}

	client, err := pfclient.New(context.Background(), clientConfig)
	require.NoError(t, err)

	return client
}
