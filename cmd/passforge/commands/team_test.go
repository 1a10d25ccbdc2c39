package commands_test

import (
	"testing"

	"github.com/passforge-io/passforge-go/cmd/passforge/commands"
	"github.com/stretchr/testify/assert"
)

func TestNewTeamCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewTeamCommand()
	assert.Equal(t, "team", cmd.Use)
	assert.Equal(t, "Manage team membership", cmd.Short)

	// Check subcommands are added
	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 4)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "info")
	assert.Contains(t, commandNames, "add-member")
	assert.Contains(t, commandNames, "remove-member")
	assert.Contains(t, commandNames, "set-role")
}

func TestTeamInfoCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewTeamCommand()
	cmd := findSubcommand(root, "info")
	assert.Equal(t, "info TEAM_ID", cmd.Use)
	assert.Equal(t, "Show team details", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

func TestTeamAddMemberCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewTeamCommand()
	cmd := findSubcommand(root, "add-member")
	assert.Equal(t, "add-member TEAM_ID EMAIL", cmd.Use)
	assert.Equal(t, "Add a member to a team", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)

	// Check flags
	roleFlag := cmd.Flags().Lookup("role")
	assert.NotNil(t, roleFlag)
	assert.Equal(t, "", roleFlag.DefValue)
}

func TestTeamRemoveMemberCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewTeamCommand()
	cmd := findSubcommand(root, "remove-member")
	assert.Equal(t, "remove-member TEAM_ID EMAIL", cmd.Use)
	assert.Equal(t, "Remove a member from a team", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}

func TestTeamSetRoleCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewTeamCommand()
	cmd := findSubcommand(root, "set-role")
	assert.Equal(t, "set-role TEAM_ID EMAIL ROLE", cmd.Use)
	assert.Equal(t, "Change a member's role", cmd.Short)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Args)
}
