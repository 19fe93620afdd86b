package domain

// Role is the coarse permission level carried by every authenticated actor.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleWriter Role = "writer"
	RoleUser   Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleWriter, RoleUser:
		return true
	}
	return false
}

// Actor is the identity resolved for a single request. A nil *Actor means
// the request is anonymous.
type Actor struct {
	ID   string
	Role Role
}

// IsAdmin is nil-safe.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}
