package access

import "github.com/contentdesk/cms/internal/core/domain"

// MediaPolicy governs uploaded media metadata.
type MediaPolicy struct{}

func (MediaPolicy) Evaluate(actor *domain.Actor, op Operation, _ Record) Decision {
	switch op {
	case OpRead:
		return Allowed()
	case OpCreate, OpUpdate:
		return allowIf(actor != nil)
	case OpDelete:
		return allowIf(actor.IsAdmin())
	}
	return Denied()
}
