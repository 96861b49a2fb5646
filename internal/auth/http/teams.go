package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/service"
	"github.com/taskhubhq/taskhub/internal/auth/store"
	"github.com/taskhubhq/taskhub/pkg/authclient"
	"github.com/taskhubhq/taskhub/pkg/httpx"
	"github.com/taskhubhq/taskhub/pkg/slogx"
)

// TeamsHandler handles all team and membership endpoints.
type TeamsHandler struct {
	Service *service.TeamService
}

func teamResponse(t domain.Team) authclient.TeamResponse {
	return authclient.TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		ManagerID:   t.ManagerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// HandleCreate handles POST /v1/teams
//
//	@Summary		Create a team
//	@Description	Creates a team with the caller as its manager. Only accounts with the manager role can create teams.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.CreateTeamRequest	true	"Team creation request"
//	@Success		201		{object}	authclient.TeamResponse
//	@Failure		400		{object}	authclient.ErrorResponse	"Invalid request"
//	@Failure		401		{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	authclient.ErrorResponse	"Caller is not a manager"
//	@Router			/v1/teams [post].
func (h *TeamsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Get user ID from context (injected by AuthnMiddleware)
	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	var req authclient.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Team name is required")
		return
	}

	team, err := h.Service.CreateTeam(ctx, userID, req.Name, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			authclient.ErrForbidden.WriteError(w)
		default:
			log.Error("failed to create team", "user_id", userID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, teamResponse(team))
}

// HandleList handles GET /v1/teams
//
//	@Summary		List my teams
//	@Description	Returns every team the caller belongs to.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authclient.ListTeamsResponse
//	@Failure		401	{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/teams [get].
func (h *TeamsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	teams, err := h.Service.ListTeams(ctx, userID)
	if err != nil {
		log.Error("failed to list teams", "user_id", userID, "err", err)
		authclient.ErrServerError.WriteError(w)
		return
	}

	resp := authclient.ListTeamsResponse{
		Teams: make([]authclient.TeamResponse, len(teams)),
	}
	for i, team := range teams {
		resp.Teams[i] = teamResponse(team)
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleGet handles GET /v1/teams/{id}
//
//	@Summary		Get a team
//	@Description	Returns one team. Only members can see it; non-members get the same denial whether the team exists or not.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Team ID (ULID)"
//	@Success		200	{object}	authclient.TeamResponse
//	@Failure		401	{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	authclient.ErrorResponse	"Caller is not a member"
//	@Router			/v1/teams/{id} [get].
func (h *TeamsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	team, err := h.Service.GetTeam(ctx, userID, r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			authclient.ErrForbidden.WriteError(w)
		case errors.Is(err, store.ErrNotFound):
			authclient.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to load team", "user_id", userID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, teamResponse(team))
}

// HandleUpdate handles PATCH /v1/teams/{id}
//
// Absent fields keep their current value, so the handler merges the patch
// onto the stored team before the update.
//
//	@Summary		Update a team
//	@Description	Renames or redescribes a team. Manager only; absent fields keep their current value.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"Team ID (ULID)"
//	@Param			request	body		authclient.UpdateTeamRequest	true	"Fields to update"
//	@Success		200		{object}	authclient.TeamResponse
//	@Failure		400		{object}	authclient.ErrorResponse	"Invalid request"
//	@Failure		401		{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	authclient.ErrorResponse	"Caller is not the team manager"
//	@Router			/v1/teams/{id} [patch].
func (h *TeamsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}
	teamID := r.PathValue("id")

	var req authclient.UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	if req.Name == nil && req.Description == nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Nothing to update")
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Team name cannot be empty")
		return
	}

	// Merge the patch onto the current values. The read is membership
	// gated and the update is manager gated, both inside the service.
	current, err := h.Service.GetTeam(ctx, userID, teamID)
	if err == nil {
		name, description := current.Name, current.Description
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		var team domain.Team
		if team, err = h.Service.UpdateTeam(ctx, userID, teamID, name, description); err == nil {
			httpx.WriteJSON(w, http.StatusOK, teamResponse(team))
			return
		}
	}

	switch {
	case errors.Is(err, service.ErrForbidden):
		authclient.ErrForbidden.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		authclient.ErrNotFound.WriteError(w)
	default:
		log.Error("failed to update team", "user_id", userID, "team_id", teamID, "err", err)
		authclient.ErrServerError.WriteError(w)
	}
}

// HandleDelete handles DELETE /v1/teams/{id}
//
//	@Summary		Delete a team
//	@Description	Deletes a team with its memberships and invitations. Team tasks are deleted with it. Manager only.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path	string	true	"Team ID (ULID)"
//	@Success		204	"Team deleted"
//	@Failure		401	{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	authclient.ErrorResponse	"Caller is not the team manager"
//	@Router			/v1/teams/{id} [delete].
func (h *TeamsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}
	teamID := r.PathValue("id")

	if err := h.Service.DeleteTeam(ctx, userID, teamID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			authclient.ErrForbidden.WriteError(w)
		case errors.Is(err, store.ErrNotFound):
			authclient.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to delete team", "user_id", userID, "team_id", teamID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleListMembers handles GET /v1/teams/{id}/members
//
//	@Summary		List team members
//	@Description	Returns the roster of a team. Members only.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Team ID (ULID)"
//	@Success		200	{object}	authclient.ListMembersResponse
//	@Failure		401	{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	authclient.ErrorResponse	"Caller is not a member"
//	@Router			/v1/teams/{id}/members [get].
func (h *TeamsHandler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}
	teamID := r.PathValue("id")

	members, err := h.Service.ListMembers(ctx, userID, teamID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			authclient.ErrForbidden.WriteError(w)
		default:
			log.Error("failed to list members", "user_id", userID, "team_id", teamID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	resp := authclient.ListMembersResponse{
		Members: make([]authclient.MemberResponse, len(members)),
	}
	for i, m := range members {
		resp.Members[i] = authclient.MemberResponse{
			UserID:   m.UserID,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		}
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// HandleInvite handles POST /v1/teams/{id}/invitations
//
// The invitation token only ever travels in the mail; the response carries
// none of it.
//
//	@Summary		Invite a member
//	@Description	Emails an invitation for the team. Manager only; re-inviting the same address replaces the earlier invitation.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Team ID (ULID)"
//	@Param			request	body		authclient.InviteMemberRequest	true	"Invitation request"
//	@Success		201		{object}	authclient.InvitationResponse
//	@Failure		400		{object}	authclient.ErrorResponse	"Invalid request"
//	@Failure		401		{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Failure		403		{object}	authclient.ErrorResponse	"Caller is not the team manager"
//	@Failure		409		{object}	authclient.ErrorResponse	"Address already belongs to a member"
//	@Failure		502		{object}	authclient.ErrorResponse	"Invitation mail could not be sent"
//	@Router			/v1/teams/{id}/invitations [post].
func (h *TeamsHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}
	teamID := r.PathValue("id")

	var req authclient.InviteMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Email is required")
		return
	}

	inv, err := h.Service.InviteMember(ctx, userID, teamID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			authclient.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrAlreadyMember):
			httpx.WriteError(w, http.StatusConflict, "already_member",
				"That address already belongs to a team member")
		case errors.Is(err, service.ErrDeliveryFailure):
			log.Warn("invitation mail failed", "team_id", teamID)
			authclient.ErrDeliveryFailure.WriteError(w)
		default:
			log.Error("failed to invite member", "user_id", userID, "team_id", teamID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authclient.InvitationResponse{
		TeamID:    inv.TeamID,
		Email:     inv.Email,
		ExpiresAt: inv.ExpiresAt,
	})
}

// HandleAcceptInvitation handles POST /v1/invitations/accept
//
//	@Summary		Accept an invitation
//	@Description	Redeems an emailed invitation token and joins the team as a member. The token must have been issued for the caller's email.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authclient.AcceptInvitationRequest	true	"Invitation token"
//	@Success		200		{object}	authclient.TeamResponse				"The joined team"
//	@Failure		400		{object}	authclient.ErrorResponse			"Invalid request"
//	@Failure		401		{object}	authclient.ErrorResponse			"Unknown, expired or already used token"
//	@Failure		403		{object}	authclient.ErrorResponse			"Invitation was issued to a different address"
//	@Failure		409		{object}	authclient.ErrorResponse			"Caller is already a member"
//	@Router			/v1/invitations/accept [post].
func (h *TeamsHandler) HandleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}

	var req authclient.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to parse request", "err", err)
		authclient.ErrInvalidRequest.WriteError(w)
		return
	}

	team, err := h.Service.AcceptInvitation(ctx, userID, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationInvalid):
			httpx.WriteError(w, http.StatusUnauthorized, "invitation_invalid",
				"Invitation is unknown, expired or already used")
		case errors.Is(err, service.ErrForbidden):
			authclient.ErrForbidden.WriteError(w)
		case errors.Is(err, service.ErrAlreadyMember):
			httpx.WriteError(w, http.StatusConflict, "already_member",
				"You are already a member of this team")
		default:
			log.Error("failed to accept invitation", "user_id", userID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, teamResponse(team))
}

// HandleRemoveMember handles DELETE /v1/teams/{id}/members/{uid}
//
//	@Summary		Remove a member
//	@Description	Removes a member from the team. Managers can remove members; members can remove themselves to leave. The manager cannot be removed.
//	@Tags			Teams
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path	string	true	"Team ID (ULID)"
//	@Param			uid	path	string	true	"User ID of the member to remove"
//	@Success		204	"Member removed"
//	@Failure		401	{object}	authclient.ErrorResponse	"Invalid or missing access token"
//	@Failure		403	{object}	authclient.ErrorResponse	"Not allowed to remove this member"
//	@Failure		404	{object}	authclient.ErrorResponse	"No such membership"
//	@Router			/v1/teams/{id}/members/{uid} [delete].
func (h *TeamsHandler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := ctx.Value(httpx.CtxKeyUserID).(string)
	if !ok || userID == "" {
		authclient.ErrInvalidToken.WriteError(w)
		return
	}
	teamID := r.PathValue("id")
	targetID := r.PathValue("uid")

	if err := h.Service.RemoveMember(ctx, userID, teamID, targetID); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			authclient.ErrForbidden.WriteError(w)
		case errors.Is(err, store.ErrNotFound):
			authclient.ErrNotFound.WriteError(w)
		default:
			log.Error("failed to remove member",
				"user_id", userID, "team_id", teamID, "target_id", targetID, "err", err)
			authclient.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
