package models

import "fmt"

// Role is the access level assigned to a user account.
type Role int

const (
	RoleUser     Role = 1
	RoleReporter Role = 2
	RoleEditor   Role = 3
	RoleAdmin    Role = 4
)

var roleNames = map[Role]string{
	RoleUser:     "User",
	RoleReporter: "Reporter",
	RoleEditor:   "Editor",
	RoleAdmin:    "Admin",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// IsStaff reports whether the role belongs to the newsroom (reporter and above).
func (r Role) IsStaff() bool {
	return r >= RoleReporter && r <= RoleAdmin
}

// Roles lists every role in ascending order of privilege.
func Roles() []Role {
	return []Role{RoleUser, RoleReporter, RoleEditor, RoleAdmin}
}

// Actor is the principal issuing a request. The zero value is anonymous.
type Actor struct {
	ID   uint
	Role Role
}

func (a Actor) Authenticated() bool {
	return a.ID != 0
}

func (a Actor) IsStaff() bool {
	return a.Authenticated() && a.Role.IsStaff()
}

func (a Actor) Is(role Role) bool {
	return a.Authenticated() && a.Role == role
}
