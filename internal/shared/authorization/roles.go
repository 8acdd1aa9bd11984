// Package authorization defines the role model gating overtime operations.
// Posting mutation and forced assignment require supervisor capability;
// claiming and withdrawing require only an authenticated officer.
package authorization

type UserRole string

const (
	RoleSupervisor UserRole = "supervisor"
	RoleOfficer    UserRole = "officer"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsSupervisor() bool {
	return r == RoleSupervisor
}

func (r UserRole) IsValid() bool {
	return r == RoleSupervisor || r == RoleOfficer
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if !role.IsValid() {
		return RoleOfficer
	}
	return role
}
