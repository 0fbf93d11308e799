package session

import "fmt"

// Role gates which views and data a session may access. The set is closed:
// every branch on Role switches over all four values.
type Role string

const (
	RoleUser   Role = "USER"
	RoleVendor Role = "VENDOR"
	RoleAdmin  Role = "ADMIN"
	RoleGuest  Role = "GUEST"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleVendor, RoleAdmin, RoleGuest:
		return true
	}
	return false
}

// ParseRole converts a wire value into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("session: unknown role %q", s)
	}
	return r, nil
}
