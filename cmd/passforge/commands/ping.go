package commands

import (
	"context"
	"fmt"

	"github.com/passforge-io/passforge-go/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewPingCommand creates the ping command
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test connectivity to the API",
		Long:  "Check that the configured endpoint and API key can reach the PassForge API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			status := client.TestConnection(ctx)

			output := viper.GetString(configKeyOutput)
			switch output {
			case constants.FormatJSON:
				err = StandardJSONRenderer(status)
			case constants.FormatYAML:
				err = StandardYAMLRenderer(status)
			default:
				if status.Success {
					fmt.Printf("OK: %s\n", status.Message)
				}
			}

			if err != nil {
				return err
			}

			// Exit non-zero on failure so ping works in scripts and health checks.
			if !status.Success {
				return fmt.Errorf("%w: %s", constants.ErrVerificationFailed, status.Message)
			}

			return nil
		},
	}
}
