package domain

import "time"

type Team struct {
	ID          string
	Name        string
	Description string
	ManagerID   string // Creator; always holds a manager membership row
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamRole is the role a user holds within one team. TeamRoleNone is the
// synthetic value for a non-member; it never appears in storage.
type TeamRole string

const (
	TeamRoleManager TeamRole = "manager"
	TeamRoleMember  TeamRole = "member"
	TeamRoleNone    TeamRole = ""
)

type TeamMember struct {
	TeamID   string
	UserID   string
	Role     TeamRole
	JoinedAt time.Time
}
