package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/passforge-io/passforge-go/internal/constants"
	"github.com/passforge-io/passforge-go/pkg/passforge"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewTeamCommand creates the team command
func NewTeamCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage team membership",
		Long:  "Inspect PassForge teams and manage their members",
	}

	cmd.AddCommand(newTeamInfoCommand())
	cmd.AddCommand(newTeamAddMemberCommand())
	cmd.AddCommand(newTeamRemoveMemberCommand())
	cmd.AddCommand(newTeamSetRoleCommand())

	return cmd
}

func newTeamInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info TEAM_ID",
		Short: "Show team details",
		Long:  "Display team details including the member roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID := args[0]
			if teamID == "" {
				return constants.ErrTeamIDRequired
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			team, err := client.Team().Get(ctx, teamID)
			if err != nil {
				return fmt.Errorf("failed to get team info: %w", err)
			}

			return outputTeamInfo(team)
		},
	}
}

func newTeamAddMemberCommand() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "add-member TEAM_ID EMAIL",
		Short: "Add a member to a team",
		Long:  "Add a member to a PassForge team, defaulting to the member role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID := args[0]
			email := args[1]

			if teamID == "" {
				return constants.ErrTeamIDRequired
			}

			if email == "" {
				return constants.ErrEmailRequired
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			team, err := client.Team().AddMember(ctx, teamID, email, role)
			if err != nil {
				return fmt.Errorf("failed to add team member: %w", err)
			}

			return outputTeamUpdate(fmt.Sprintf("Added %s to team %s", email, teamID), team)
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "member role (default \"member\")")

	return cmd
}

func newTeamRemoveMemberCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove-member TEAM_ID EMAIL",
		Short: "Remove a member from a team",
		Long:  "Remove a member from a PassForge team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID := args[0]
			email := args[1]

			if teamID == "" {
				return constants.ErrTeamIDRequired
			}

			if email == "" {
				return constants.ErrEmailRequired
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			team, err := client.Team().RemoveMember(ctx, teamID, email)
			if err != nil {
				return fmt.Errorf("failed to remove team member: %w", err)
			}

			return outputTeamUpdate(fmt.Sprintf("Removed %s from team %s", email, teamID), team)
		},
	}
}

func newTeamSetRoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-role TEAM_ID EMAIL ROLE",
		Short: "Change a member's role",
		Long:  "Change the role of an existing team member",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			teamID := args[0]
			email := args[1]
			role := args[2]

			if teamID == "" {
				return constants.ErrTeamIDRequired
			}

			if email == "" {
				return constants.ErrEmailRequired
			}

			ctx := context.Background()

			client, err := createClient(ctx)
			if err != nil {
				return err
			}

			team, err := client.Team().UpdateMemberRole(ctx, teamID, email, role)
			if err != nil {
				return fmt.Errorf("failed to update member role: %w", err)
			}

			return outputTeamUpdate(fmt.Sprintf("Set %s to %s in team %s", email, role, teamID), team)
		},
	}
}

func outputTeamInfo(team *passforge.TeamInfo) error {
	output := viper.GetString(configKeyOutput)
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(team)
	case constants.FormatYAML:
		return StandardYAMLRenderer(team)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("Team ID", team.TeamID)
		_ = table.Append("Name", team.Name)

		if team.Plan != "" {
			_ = table.Append("Plan", team.Plan)
		}

		if team.MemberLimit > 0 {
			_ = table.Append("Member Limit", strconv.Itoa(team.MemberLimit))
		}

		_ = table.Append("Members", strconv.Itoa(len(team.Members)))

		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		if len(team.Members) == 0 {
			return nil
		}

		fmt.Println()

		return renderMemberTable(team.Members)
	}
}

func outputTeamUpdate(message string, team *passforge.TeamInfo) error {
	output := viper.GetString(configKeyOutput)
	switch output {
	case constants.FormatJSON:
		return StandardJSONRenderer(team)
	case constants.FormatYAML:
		return StandardYAMLRenderer(team)
	default:
		fmt.Println(message)

		return renderMemberTable(team.Members)
	}
}

func renderMemberTable(members []passforge.TeamMember) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Email", "Role", "Added")

	for _, member := range members {
		added := constants.NotAvailable
		if !member.AddedAt.IsZero() {
			added = member.AddedAt.Format(time.RFC3339)
		}

		_ = table.Append(member.Email, member.Role, added)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}
