// Package commands implements the passforge CLI commands.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/passforge-io/passforge-go/internal/constants"
	"github.com/passforge-io/passforge-go/pkg/passforge"
	"github.com/passforge-io/passforge-go/pkg/pfclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// maskVisiblePrefix is how many leading API key characters config show reveals.
const maskVisiblePrefix = 4

// Configuration keys accepted by config set/unset.
const (
	configKeyAPIKey   = "api_key"
	configKeyEndpoint = "endpoint"
	configKeyOutput   = "output"
	configKeyTimeout  = "timeout"
)

// Config is the persisted CLI configuration stored in ~/.passforge/config.yml.
type Config struct {
	APIKey      string `json:"api_key,omitempty"  yaml:"api_key,omitempty"`
	APIEndpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Output      string `json:"output,omitempty"   yaml:"output,omitempty"`
	Timeout     string `json:"timeout,omitempty"  yaml:"timeout,omitempty"`
}

// createClient builds a passforge client from the effective CLI configuration.
// Precedence follows viper: flags, then PASSFORGE_* environment variables, then
// the config file.
func createClient(ctx context.Context) (passforge.Client, error) {
	apiKey := viper.GetString(configKeyAPIKey)
	if apiKey == "" {
		return nil, constants.ErrNoAPIKeyConfigured
	}

	config := &passforge.Config{
		APIKey:      apiKey,
		APIEndpoint: viper.GetString(configKeyEndpoint),
	}

	if timeout := viper.GetString(configKeyTimeout); timeout != "" {
		parsed, err := time.ParseDuration(timeout)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidTimeout, timeout)
		}

		config.HTTPTimeout = parsed
	}

	client, err := pfclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// configFilePath returns the config file in use, or the default location when
// none has been read yet.
func configFilePath() (string, error) {
	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".passforge", "config.yml"), nil
}

// loadStoredConfig reads the config file directly, without flag or environment
// overlays, so that persisted values never absorb transient state.
func loadStoredConfig() *Config {
	config := &Config{}

	configFile, err := configFilePath()
	if err != nil {
		return config
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return config
	}

	_ = yaml.Unmarshal(data, config)

	return config
}

// saveConfigStruct persists the CLI configuration, creating the config
// directory on first use. The file holds the API key, so it is written 0600.
func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// maskAPIKey hides all but the first few characters of an API key for display.
func maskAPIKey(key string) string {
	if key == "" {
		return constants.NotAvailable
	}

	if len(key) <= maskVisiblePrefix {
		return constants.MaskedSecret
	}

	return key[:maskVisiblePrefix] + constants.MaskedSecret
}

// effectiveEndpoint mirrors the SDK's endpoint resolution for display purposes.
func effectiveEndpoint() string {
	if endpoint := viper.GetString(configKeyEndpoint); endpoint != "" {
		return endpoint
	}

	if endpoint := os.Getenv(pfclient.EndpointEnvVar); endpoint != "" {
		return endpoint
	}

	return pfclient.DefaultAPIEndpoint
}

// StandardJSONRenderer encodes data as indented JSON on stdout.
func StandardJSONRenderer[T any](data T) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to JSON: %w", err)
	}

	return nil
}

// StandardYAMLRenderer encodes data as YAML on stdout.
func StandardYAMLRenderer[T any](data T) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(constants.JSONIndentSize)

	err := encoder.Encode(data)
	if err != nil {
		return fmt.Errorf("encoding data to YAML: %w", err)
	}

	return nil
}
