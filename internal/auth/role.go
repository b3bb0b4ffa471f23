package auth

// Role partitions accounts into individuals and NGOs. The partition is hard:
// each role has its own landing page and an account never sees the other
// role's content.
type Role string

const (
	// RoleIndividual is the default role for personal accounts.
	RoleIndividual Role = "individual"
	// RoleNGO marks accounts that manage student records.
	RoleNGO Role = "ngo"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleIndividual || r == RoleNGO
}

// Landing returns the page an account of this role is sent to after login
// or when it requests a page belonging to the other role.
func (r Role) Landing() string {
	if r == RoleNGO {
		return "/ngo/dashboard"
	}
	return "/home"
}

// ParseRole normalizes a submitted role string. Unknown or empty values
// fall back to individual, matching the signup form default.
func ParseRole(s string) Role {
	if Role(s) == RoleNGO {
		return RoleNGO
	}
	return RoleIndividual
}
