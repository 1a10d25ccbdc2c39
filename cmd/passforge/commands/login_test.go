package commands_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/passforge-io/passforge-go/cmd/passforge/commands"
	"github.com/passforge-io/passforge-go/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoginCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewLoginCommand()
	assert.Equal(t, "login", cmd.Use)
	assert.Equal(t, "Verify and store an API key", cmd.Short)
	assert.NotNil(t, cmd.RunE)

	// Check flags
	apiKeyFlag := cmd.Flags().Lookup("api-key")
	assert.NotNil(t, apiKeyFlag)
	assert.Equal(t, "k", apiKeyFlag.Shorthand)

	endpointFlag := cmd.Flags().Lookup("endpoint")
	assert.NotNil(t, endpointFlag)
	assert.Equal(t, "e", endpointFlag.Shorthand)
}

func TestNewLogoutCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewLogoutCommand()
	assert.Equal(t, "logout", cmd.Use)
	assert.Equal(t, "Remove the stored API key", cmd.Short)
	assert.NotNil(t, cmd.RunE)
}

// TestLoginVerifiesAndPersists runs login against a stub endpoint and checks
// the key lands in the config file.
func TestLoginVerifiesAndPersists(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/test", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	cmd := commands.NewLoginCommand()
	cmd.SetArgs([]string{"--api-key", "pf_live_1234567890", "--endpoint", server.URL})
	require.NoError(t, cmd.Execute())

	configFile := filepath.Join(os.Getenv("HOME"), ".passforge", "config.yml")
	stored := readStoredConfig(t, configFile)
	assert.Equal(t, "pf_live_1234567890", stored["api_key"])
	assert.Equal(t, server.URL, stored["endpoint"])
}

func TestLoginRejectsUnreachableEndpoint(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd := commands.NewLoginCommand()
	cmd.SetArgs([]string{"--api-key", "pf_live_1234567890", "--endpoint", "http://127.0.0.1:1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, constants.ErrVerificationFailed)

	// Nothing should have been persisted
	configFile := filepath.Join(os.Getenv("HOME"), ".passforge", "config.yml")
	_, statErr := os.Stat(configFile)
	assert.True(t, os.IsNotExist(statErr))
}
