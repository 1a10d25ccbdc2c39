package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/passforge-io/passforge-go/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewUsageCommand creates the usage command
func NewUsageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show account usage",
		Long:  "Display password generation counts and quota for the current API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			usage, err := client.GetUsage(ctx)
			if err != nil {
				return fmt.Errorf("failed to get usage: %w", err)
			}

			output := viper.GetString(configKeyOutput)
			switch output {
			case constants.FormatJSON:
				return StandardJSONRenderer(usage)
			case constants.FormatYAML:
				return StandardYAMLRenderer(usage)
			default:
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Plan", usage.Plan)
				_ = table.Append("Passwords Generated", strconv.Itoa(usage.PasswordsGenerated))
				_ = table.Append("Bulk Requests", strconv.Itoa(usage.BulkRequests))
				_ = table.Append("Quota Used", fmt.Sprintf("%d/%d", usage.Quota.Used, usage.Quota.Limit))

				if usage.Quota.Limit > 0 {
					percent := float64(usage.Quota.Used) / float64(usage.Quota.Limit) * constants.PercentageMultiplier
					_ = table.Append("Quota Utilization", fmt.Sprintf("%.1f%%", percent))
				}

				_ = table.Append("Remaining", strconv.Itoa(usage.Quota.Remaining))

				if !usage.PeriodResetsAt.IsZero() {
					_ = table.Append("Period Resets", usage.PeriodResetsAt.Format(time.RFC3339))
				}

				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}

				return nil
			}
		},
	}
}
