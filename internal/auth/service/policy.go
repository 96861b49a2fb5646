package service

import (
	"context"
	"errors"

	"github.com/taskhubhq/taskhub/internal/auth/domain"
	"github.com/taskhubhq/taskhub/internal/auth/store"
)

// ErrForbidden is returned when the caller is not allowed to perform an
// action. Outsiders get the same answer as under-privileged members, so a
// denied request never confirms that the resource exists.
var ErrForbidden = errors.New("forbidden")

// Action names one guarded operation. Handlers never check roles directly;
// everything funnels through these.
type Action string

const (
	ActionTaskView   Action = "task:view"
	ActionTaskCreate Action = "task:create"
	ActionTaskUpdate Action = "task:update"
	ActionTaskDelete Action = "task:delete"

	ActionTeamView     Action = "team:view"
	ActionTeamUpdate   Action = "team:update"
	ActionTeamDelete   Action = "team:delete"
	ActionMemberList   Action = "member:list"
	ActionMemberInvite Action = "member:invite"
)

// PolicyService answers authorization questions. The rules themselves are
// pure functions; the service only resolves the caller's membership.
type PolicyService struct {
	Store store.Store
}

// taskRelation captures how an actor stands to one task.
type taskRelation struct {
	role     domain.TeamRole
	personal bool
	owner    bool
	assignee bool
}

// allowsTask is the task rulebook. Personal tasks are owner-only. Inside a
// team, the manager touches everything, members touch what they own or are
// assigned, and the whole team can view and create.
func allowsTask(action Action, r taskRelation) bool {
	if r.personal {
		return r.owner
	}
	switch r.role {
	case domain.TeamRoleManager:
		return true
	case domain.TeamRoleMember:
		switch action {
		case ActionTaskView, ActionTaskCreate:
			return true
		case ActionTaskUpdate, ActionTaskDelete:
			return r.owner || r.assignee
		}
	}
	return false
}

// allowsTeam is the team rulebook. Viewing the team and listing members is
// open to the whole team; changing the team, deleting it and inviting is
// the manager's.
func allowsTeam(action Action, role domain.TeamRole) bool {
	switch action {
	case ActionTeamView, ActionMemberList:
		return role != domain.TeamRoleNone
	case ActionTeamUpdate, ActionTeamDelete, ActionMemberInvite:
		return role == domain.TeamRoleManager
	}
	return false
}

// allowsMemberRemove is the membership rulebook. Members remove themselves
// (leaving), the manager removes anyone else. The manager can be neither
// removed nor leave; an orphaned team has no one left to run it, so the
// manager deletes the team instead.
func allowsMemberRemove(actorRole, targetRole domain.TeamRole, self bool) bool {
	if targetRole == domain.TeamRoleManager {
		return false
	}
	if self {
		return actorRole != domain.TeamRoleNone
	}
	return actorRole == domain.TeamRoleManager
}

// AuthorizeTask checks one task action for a user. Personal tasks never
// consult memberships.
func (s *PolicyService) AuthorizeTask(ctx context.Context, userID string, action Action, task domain.Task) error {
	rel := taskRelation{
		personal: task.TeamID == nil,
		owner:    task.OwnerID == userID,
		assignee: task.AssigneeID != nil && *task.AssigneeID == userID,
	}
	if !rel.personal {
		role, err := s.teamRole(ctx, *task.TeamID, userID)
		if err != nil {
			return err
		}
		rel.role = role
	}
	if !allowsTask(action, rel) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeTeam checks one team-scoped action for a user.
func (s *PolicyService) AuthorizeTeam(ctx context.Context, userID string, action Action, teamID string) error {
	role, err := s.teamRole(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if !allowsTeam(action, role) {
		return ErrForbidden
	}
	return nil
}

// AuthorizeMemberRemove checks whether actor may remove target from a team.
func (s *PolicyService) AuthorizeMemberRemove(ctx context.Context, actorID, targetID, teamID string) error {
	actorRole, err := s.teamRole(ctx, teamID, actorID)
	if err != nil {
		return err
	}
	targetRole, err := s.teamRole(ctx, teamID, targetID)
	if err != nil {
		return err
	}
	if !allowsMemberRemove(actorRole, targetRole, actorID == targetID) {
		return ErrForbidden
	}
	return nil
}

// teamRole resolves the user's role in a team. Non-members come back as
// TeamRoleNone; a missing membership is a deny later, never an error.
func (s *PolicyService) teamRole(ctx context.Context, teamID, userID string) (domain.TeamRole, error) {
	m, err := s.Store.Memberships().GetMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TeamRoleNone, nil
		}
		return domain.TeamRoleNone, err
	}
	return m.Role, nil
}
