package mongo

import (
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/contentdesk/cms/internal/core/access"
	"github.com/contentdesk/cms/internal/core/domain"
)

// matchNothing selects no documents: every stored document has an _id.
var matchNothing = bson.M{"_id": nil}

// accessFilter translates a read decision into a query document.
func accessFilter(dec access.Decision) bson.M {
	switch dec.Effect {
	case access.Allow:
		return bson.M{}
	case access.AllowWithFilter:
		return filterToBSON(dec.Filter)
	default:
		return matchNothing
	}
}

func filterToBSON(f access.Filter) bson.M {
	if len(f.AnyOf) == 0 {
		return matchNothing
	}
	clauses := make(bson.A, 0, len(f.AnyOf))
	for _, c := range f.AnyOf {
		clauses = append(clauses, conditionToBSON(c))
	}
	if len(clauses) == 1 {
		return clauses[0].(bson.M)
	}
	return bson.M{"$or": clauses}
}

func conditionToBSON(c access.Condition) bson.M {
	if c.Field == domain.FieldID {
		oid, err := primitive.ObjectIDFromHex(c.Value)
		if err != nil {
			return matchNothing
		}
		return bson.M{"_id": oid}
	}
	return bson.M{c.Field: c.Value}
}

// withID narrows base to a single document.
func withID(oid primitive.ObjectID, base bson.M) bson.M {
	if len(base) == 0 {
		return bson.M{"_id": oid}
	}
	return bson.M{"$and": bson.A{bson.M{"_id": oid}, base}}
}

// skip returns the document offset of page, computed in int64 and clamped
// so a huge page number never wraps negative.
func skip(page, limit int) int64 {
	if page <= 1 || limit <= 0 {
		return 0
	}
	p, l := int64(page-1), int64(limit)
	if p > math.MaxInt64/l {
		return math.MaxInt64
	}
	return p * l
}
