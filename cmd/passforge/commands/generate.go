package commands

import (
	"context"
	"fmt"

	"github.com/passforge-io/passforge-go/internal/constants"
	"github.com/passforge-io/passforge-go/pkg/passforge"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	var (
		length      int
		count       int
		noUppercase bool
		noLowercase bool
		noNumbers   bool
		noSymbols   bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one or more passwords",
		Long: `Generate passwords through the PassForge API.

Character classes are enabled by default; the --no-* flags disable them
individually. With --count above one the bulk endpoint is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			request := &passforge.GenerateRequest{Length: length}
			if noUppercase {
				request.Uppercase = passforge.Bool(false)
			}

			if noLowercase {
				request.Lowercase = passforge.Bool(false)
			}

			if noNumbers {
				request.Numbers = passforge.Bool(false)
			}

			if noSymbols {
				request.Symbols = passforge.Bool(false)
			}

			if count != 1 {
				bulk, err := client.Passwords().GenerateBulk(ctx, count, request)
				if err != nil {
					return fmt.Errorf("failed to generate passwords: %w", err)
				}

				return outputBulkPasswords(bulk)
			}

			password, err := client.Passwords().Generate(ctx, request)
			if err != nil {
				return fmt.Errorf("failed to generate password: %w", err)
			}

			return outputPassword(password)
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", 0, "password length (8-64, default 16)")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of passwords to generate (max 1000)")
	cmd.Flags().BoolVar(&noUppercase, "no-uppercase", false, "exclude uppercase letters")
	cmd.Flags().BoolVar(&noLowercase, "no-lowercase", false, "exclude lowercase letters")
	cmd.Flags().BoolVar(&noNumbers, "no-numbers", false, "exclude numbers")
	cmd.Flags().BoolVar(&noSymbols, "no-symbols", false, "exclude symbols")

	return cmd
}

func outputPassword(password *passforge.Password) error {
	output := viper.GetString(configKeyOutput)
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(password)
	case constants.FormatYAML:
		return StandardYAMLRenderer(password)
	default:
		// Bare output keeps the password usable in shell pipelines.
		fmt.Println(password.Password)

		return nil
	}
}

func outputBulkPasswords(bulk *passforge.BulkPasswords) error {
	output := viper.GetString(configKeyOutput)
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(bulk)
	case constants.FormatYAML:
		return StandardYAMLRenderer(bulk)
	default:
		for _, password := range bulk.Passwords {
			fmt.Println(password)
		}

		return nil
	}
}
