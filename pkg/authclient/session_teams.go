package authclient

import (
	"context"
	"fmt"
	"net/http"
)

// ============================================================================
// Teams
// ============================================================================

// CreateTeam creates a team with the caller as its manager.
// Requires the manager role.
func (s *Session) CreateTeam(ctx context.Context, name, description string) (*TeamResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/teams", CreateTeamRequest{
		Name:        name,
		Description: description,
	})
	if err != nil {
		return nil, err
	}

	var team TeamResponse
	if err := decodeJSON(resp, &team, http.StatusCreated); err != nil {
		return nil, err
	}

	return &team, nil
}

// ListTeams returns every team the caller belongs to.
func (s *Session) ListTeams(ctx context.Context) (*ListTeamsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/teams", nil, nil)
	if err != nil {
		return nil, err
	}

	var listResp ListTeamsResponse
	if err := decodeJSON(resp, &listResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &listResp, nil
}

// GetTeam returns one team. Members only.
func (s *Session) GetTeam(ctx context.Context, teamID string) (*TeamResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/teams/"+teamID, nil, nil)
	if err != nil {
		return nil, err
	}

	var team TeamResponse
	if err := decodeJSON(resp, &team, http.StatusOK); err != nil {
		return nil, err
	}

	return &team, nil
}

// UpdateTeam renames or redescribes a team. Nil fields keep their current
// value. Requires being the team's manager.
func (s *Session) UpdateTeam(ctx context.Context, teamID string, req UpdateTeamRequest) (*TeamResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPatch, "/v1/teams/"+teamID, req)
	if err != nil {
		return nil, err
	}

	var team TeamResponse
	if err := decodeJSON(resp, &team, http.StatusOK); err != nil {
		return nil, err
	}

	return &team, nil
}

// DeleteTeam deletes a team along with its memberships, invitations and
// tasks. Requires being the team's manager.
func (s *Session) DeleteTeam(ctx context.Context, teamID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/teams/"+teamID, nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}

// ============================================================================
// Members and Invitations
// ============================================================================

// ListMembers returns the roster of a team. Members only.
func (s *Session) ListMembers(ctx context.Context, teamID string) (*ListMembersResponse, error) {
	path := fmt.Sprintf("/v1/teams/%s/members", teamID)

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var listResp ListMembersResponse
	if err := decodeJSON(resp, &listResp, http.StatusOK); err != nil {
		return nil, err
	}

	return &listResp, nil
}

// InviteMember emails an invitation to join the team. Requires being the
// team's manager. Re-inviting the same address replaces the earlier
// invitation.
func (s *Session) InviteMember(ctx context.Context, teamID, email string) (*InvitationResponse, error) {
	path := fmt.Sprintf("/v1/teams/%s/invitations", teamID)

	resp, err := s.doAuthJSON(ctx, http.MethodPost, path, InviteMemberRequest{Email: email})
	if err != nil {
		return nil, err
	}

	var invResp InvitationResponse
	if err := decodeJSON(resp, &invResp, http.StatusCreated); err != nil {
		return nil, err
	}

	return &invResp, nil
}

// AcceptInvitation redeems an emailed invitation token and joins the team.
// The invitation must have been issued for the caller's email address.
func (s *Session) AcceptInvitation(ctx context.Context, token string) (*TeamResponse, error) {
	resp, err := s.doAuthJSON(ctx, http.MethodPost, "/v1/invitations/accept", AcceptInvitationRequest{Token: token})
	if err != nil {
		return nil, err
	}

	var team TeamResponse
	if err := decodeJSON(resp, &team, http.StatusOK); err != nil {
		return nil, err
	}

	return &team, nil
}

// RemoveMember removes a member from a team. Managers can remove any
// member; a member can remove themselves to leave. The manager cannot be
// removed.
func (s *Session) RemoveMember(ctx context.Context, teamID, userID string) error {
	path := fmt.Sprintf("/v1/teams/%s/members/%s", teamID, userID)

	resp, err := s.doAuthRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}

	return checkStatusNoContent(resp)
}
