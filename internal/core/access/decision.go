// Package access holds the access-control rules for every collection.
//
// Rules are pure functions of the requesting actor, the operation and,
// where relevant, the target record. They never touch storage; read rules
// narrow queries by returning a Filter instead of a plain allow.
package access

import "github.com/contentdesk/cms/internal/core/domain"

// Operation is a CRUD verb checked against a policy.
type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Effect tags the outcome of a policy check.
type Effect int

const (
	Deny Effect = iota
	Allow
	AllowWithFilter
)

func (e Effect) String() string {
	switch e {
	case Allow:
		return "allow"
	case AllowWithFilter:
		return "allow_with_filter"
	default:
		return "deny"
	}
}

// Decision is the result of Policy.Evaluate. Filter is only meaningful when
// Effect is AllowWithFilter.
type Decision struct {
	Effect Effect
	Filter Filter
}

func Allowed() Decision { return Decision{Effect: Allow} }

func Denied() Decision { return Decision{Effect: Deny} }

func Filtered(f Filter) Decision { return Decision{Effect: AllowWithFilter, Filter: f} }

func allowIf(ok bool) Decision {
	if ok {
		return Allowed()
	}
	return Denied()
}

// Permits reports whether the decision lets the operation proceed at all.
func (d Decision) Permits() bool {
	return d.Effect != Deny
}

// Admits reports whether rec is visible under the decision.
func (d Decision) Admits(rec Record) bool {
	switch d.Effect {
	case Allow:
		return true
	case AllowWithFilter:
		return d.Filter.Matches(rec)
	default:
		return false
	}
}

// Record is anything a filter can be evaluated against.
type Record interface {
	Field(name string) string
}

// Policy decides whether actor may perform op. A nil actor is anonymous;
// rec is nil for collection-level checks such as list and create.
type Policy interface {
	Evaluate(actor *domain.Actor, op Operation, rec Record) Decision
}
