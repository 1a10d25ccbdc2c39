package commands

import (
	"context"
	"fmt"
	"strings"
	"syscall"

	"github.com/passforge-io/passforge-go/internal/constants"
	"github.com/passforge-io/passforge-go/pkg/passforge"
	"github.com/passforge-io/passforge-go/pkg/pfclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiKey   string
		endpoint string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify and store an API key",
		Long:  "Verify an API key against the PassForge API and persist it to the CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint == "" {
				endpoint = viper.GetString(configKeyEndpoint)
			}

			if apiKey == "" {
				fmt.Print("API key: ")

				byteKey, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read API key: %w", err)
				}

				apiKey = strings.TrimSpace(string(byteKey))

				fmt.Println()
			}

			if apiKey == "" {
				return constants.ErrEmptyAPIKey
			}

			// Verification should fail fast, not sit on the default bound
			config := &passforge.Config{
				APIKey:      apiKey,
				APIEndpoint: endpoint,
				HTTPTimeout: constants.ShortHTTPTimeout,
			}

			ctx := context.Background()

			client, err := pfclient.New(ctx, config)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			status := client.TestConnection(ctx)
			if !status.Success {
				return fmt.Errorf("%w: %s", constants.ErrVerificationFailed, status.Message)
			}

			stored := loadStoredConfig()
			stored.APIKey = apiKey

			if endpoint != "" {
				stored.APIEndpoint = endpoint
			}

			err = saveConfigStruct(stored)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Println("API key verified and saved")

			return nil
		},
	}

	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "API key (prompted when omitted)")
	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "API endpoint URL")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API key",
		Long:  "Remove the API key from the CLI configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			stored := loadStoredConfig()
			if stored.APIKey == "" {
				fmt.Println("No API key stored")

				return nil
			}

			stored.APIKey = ""

			err := saveConfigStruct(stored)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Println("API key removed")

			return nil
		},
	}
}
