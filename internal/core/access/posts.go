package access

import "github.com/contentdesk/cms/internal/core/domain"

// PostPolicy governs the posts collection.
//
// Admins and plain users list through the same published-only filter as
// anonymous readers; only writers additionally see their own drafts.
// Update and delete require authentication and nothing else.
type PostPolicy struct{}

func (PostPolicy) Evaluate(actor *domain.Actor, op Operation, _ Record) Decision {
	switch op {
	case OpRead:
		return Filtered(postReadFilter(actor))
	case OpCreate:
		return allowIf(actor != nil && (actor.Role == domain.RoleAdmin || actor.Role == domain.RoleWriter))
	case OpUpdate, OpDelete:
		return allowIf(actor != nil)
	}
	return Denied()
}

func postReadFilter(actor *domain.Actor) Filter {
	published := Eq(domain.FieldStatus, string(domain.StatusPublished))
	if actor != nil && actor.Role == domain.RoleWriter {
		return Eq(domain.FieldAuthor, actor.ID).Or(published)
	}
	return published
}
