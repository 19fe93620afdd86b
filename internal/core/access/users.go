package access

import "github.com/contentdesk/cms/internal/core/domain"

// UserPolicy governs the users collection. Non-admins only ever see and
// edit their own record; anyone may register.
type UserPolicy struct{}

func (UserPolicy) Evaluate(actor *domain.Actor, op Operation, rec Record) Decision {
	switch op {
	case OpRead:
		if actor.IsAdmin() {
			return Allowed()
		}
		var id string
		if actor != nil {
			id = actor.ID
		}
		return Filtered(Eq(domain.FieldID, id))
	case OpCreate:
		return Allowed()
	case OpUpdate:
		if actor.IsAdmin() {
			return Allowed()
		}
		return allowIf(actor != nil && rec != nil && actor.ID != "" && rec.Field(domain.FieldID) == actor.ID)
	case OpDelete:
		return allowIf(actor.IsAdmin())
	}
	return Denied()
}

// CanUpdateRole is the field-level rule for users.role.
func CanUpdateRole(actor *domain.Actor) bool {
	return actor.IsAdmin()
}
