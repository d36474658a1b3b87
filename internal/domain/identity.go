package domain

import (
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	default:
		return false
	}
}

func ParseRole(v string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(v)))
	return r, r.Valid()
}

// Identity is the verified caller extracted from the access token. Services
// receive it explicitly and re-check it against the user store where it matters.
type Identity struct {
	UserID      uuid.UUID
	WorkspaceID uuid.UUID
	TeamID      *uuid.UUID
	Role        Role
}

func (i Identity) HasTeam() bool {
	return i.TeamID != nil && *i.TeamID != uuid.Nil
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// ManagesTeam reports whether the caller may act on requests of teamID as a manager.
func (i Identity) ManagesTeam(teamID uuid.UUID) bool {
	if i.IsAdmin() {
		return true
	}
	return i.Role == RoleManager && i.HasTeam() && *i.TeamID == teamID
}
