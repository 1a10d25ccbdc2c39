package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/passforge-io/passforge-go/internal/constants"
	"github.com/passforge-io/passforge-go/internal/http"
	"github.com/passforge-io/passforge-go/pkg/passforge"
)

// Team membership actions understood by POST /team.
const (
	teamActionAddMember    = "add_member"
	teamActionRemoveMember = "remove_member"
	teamActionUpdateRole   = "update_role"
)

// TeamClient implements passforge.TeamClient.
type TeamClient struct {
	httpClient *http.Client
}

// NewTeamClient creates a new team client.
func NewTeamClient(httpClient *http.Client) *TeamClient {
	return &TeamClient{
		httpClient: httpClient,
	}
}

// teamActionPayload is the wire form of a team mutation.
type teamActionPayload struct {
	Action string `json:"action"`
	TeamID string `json:"teamId"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
}

// Get implements passforge.TeamClient.Get.
func (c *TeamClient) Get(ctx context.Context, teamID string) (*passforge.TeamInfo, error) {
	if teamID == "" {
		return nil, fmt.Errorf("%w: team ID is empty", passforge.ErrInvalidRequest)
	}

	query := url.Values{}
	query.Set("teamId", teamID)

	resp, err := c.httpClient.Get(ctx, "/team", query)
	if err != nil {
		return nil, fmt.Errorf("getting team info: %w", err)
	}

	var team passforge.TeamInfo

	err = decodeResponse(resp, &team)
	if err != nil {
		return nil, fmt.Errorf("parsing team info: %w", err)
	}

	return &team, nil
}

// AddMember implements passforge.TeamClient.AddMember. An empty role defaults
// to the service's base member role.
func (c *TeamClient) AddMember(ctx context.Context, teamID, email, role string) (*passforge.TeamInfo, error) {
	if role == "" {
		role = constants.DefaultTeamRole
	}

	payload := teamActionPayload{
		Action: teamActionAddMember,
		TeamID: teamID,
		Email:  email,
		Role:   role,
	}

	resp, err := c.httpClient.Post(ctx, "/team", payload)
	if err != nil {
		return nil, fmt.Errorf("adding team member: %w", err)
	}

	var team passforge.TeamInfo

	err = decodeResponse(resp, &team)
	if err != nil {
		return nil, fmt.Errorf("parsing team response: %w", err)
	}

	return &team, nil
}

// RemoveMember implements passforge.TeamClient.RemoveMember.
func (c *TeamClient) RemoveMember(ctx context.Context, teamID, email string) (*passforge.TeamInfo, error) {
	payload := teamActionPayload{
		Action: teamActionRemoveMember,
		TeamID: teamID,
		Email:  email,
	}

	resp, err := c.httpClient.Post(ctx, "/team", payload)
	if err != nil {
		return nil, fmt.Errorf("removing team member: %w", err)
	}

	var team passforge.TeamInfo

	err = decodeResponse(resp, &team)
	if err != nil {
		return nil, fmt.Errorf("parsing team response: %w", err)
	}

	return &team, nil
}

// UpdateMemberRole implements passforge.TeamClient.UpdateMemberRole.
func (c *TeamClient) UpdateMemberRole(ctx context.Context, teamID, email, role string) (*passforge.TeamInfo, error) {
	payload := teamActionPayload{
		Action: teamActionUpdateRole,
		TeamID: teamID,
		Email:  email,
		Role:   role,
	}

	resp, err := c.httpClient.Post(ctx, "/team", payload)
	if err != nil {
		return nil, fmt.Errorf("updating member role: %w", err)
	}

	var team passforge.TeamInfo

	err = decodeResponse(resp, &team)
	if err != nil {
		return nil, fmt.Errorf("parsing team response: %w", err)
	}

	return &team, nil
}
