package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/passforge-io/passforge-go/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewConfigCommand creates the config command
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage passforge CLI configuration stored in ~/.passforge/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective CLI configuration with the API key masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := &Config{
				APIKey:      maskAPIKey(viper.GetString(configKeyAPIKey)),
				APIEndpoint: effectiveEndpoint(),
				Output:      viper.GetString(configKeyOutput),
				Timeout:     viper.GetString(configKeyTimeout),
			}

			output := viper.GetString(configKeyOutput)
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(config)
			case constants.FormatYAML:
				return StandardYAMLRenderer(config)
			default:
				return displayConfigTable(config)
			}
		},
	}
}

func displayConfigTable(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = constants.NotAvailable
	}

	timeout := config.Timeout
	if timeout == "" {
		timeout = constants.NotAvailable
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")
	_ = table.Append("API Endpoint", config.APIEndpoint)
	_ = table.Append("API Key", config.APIKey)
	_ = table.Append("Output", config.Output)
	_ = table.Append("Timeout", timeout)
	_ = table.Append("Config File", configFile)

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value (api_key, endpoint, output, timeout) and persist it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			if value == "" {
				return fmt.Errorf("%w: %s", constants.ErrConfigValueRequired, key)
			}

			config := loadStoredConfig()

			switch key {
			case configKeyAPIKey:
				config.APIKey = value
			case configKeyEndpoint:
				config.APIEndpoint = value
			case configKeyOutput:
				if value != constants.FormatJSON && value != constants.FormatYAML && value != constants.FormatTable {
					return fmt.Errorf("%w: %q", constants.ErrInvalidOutputFormat, value)
				}

				config.Output = value
			case configKeyTimeout:
				parsed, err := time.ParseDuration(value)
				if err != nil || parsed <= 0 {
					return fmt.Errorf("%w: %q", constants.ErrInvalidTimeout, value)
				}

				config.Timeout = value
			default:
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			err := saveConfigStruct(config)
			if err != nil {
				return err
			}

			fmt.Printf("Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value from the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			config := loadStoredConfig()

			switch key {
			case configKeyAPIKey:
				config.APIKey = ""
			case configKeyEndpoint:
				config.APIEndpoint = ""
			case configKeyOutput:
				config.Output = ""
			case configKeyTimeout:
				config.Timeout = ""
			default:
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			err := saveConfigStruct(config)
			if err != nil {
				return err
			}

			fmt.Printf("Unset %s\n", key)

			return nil
		},
	}
}
