package access

// Condition is a single equality test on a record field.
type Condition struct {
	Field string
	Value string
}

// Filter is a disjunction of conditions: a record matches when any
// condition holds. The zero Filter matches nothing.
type Filter struct {
	AnyOf []Condition
}

// Eq builds a single-condition filter.
func Eq(field, value string) Filter {
	return Filter{AnyOf: []Condition{{Field: field, Value: value}}}
}

// Or returns a filter matching anything f or g matches.
func (f Filter) Or(g Filter) Filter {
	out := make([]Condition, 0, len(f.AnyOf)+len(g.AnyOf))
	out = append(out, f.AnyOf...)
	out = append(out, g.AnyOf...)
	return Filter{AnyOf: out}
}

// Matches evaluates the filter against rec.
func (f Filter) Matches(rec Record) bool {
	if rec == nil {
		return false
	}
	for _, c := range f.AnyOf {
		if rec.Field(c.Field) == c.Value {
			return true
		}
	}
	return false
}
