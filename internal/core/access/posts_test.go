package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentdesk/cms/internal/core/domain"
)

func samplePosts() []*domain.Post {
	return []*domain.Post{
		{ID: "p1", Author: "w1", Status: domain.StatusDraft},
		{ID: "p2", Author: "w1", Status: domain.StatusPublished},
		{ID: "p3", Author: "w2", Status: domain.StatusDraft},
		{ID: "p4", Author: "w2", Status: domain.StatusPublished},
		{ID: "p5", Author: "a1", Status: domain.StatusDraft},
	}
}

func visibleIDs(d Decision, posts []*domain.Post) []string {
	var ids []string
	for _, p := range posts {
		if d.Admits(p) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func TestPostPolicy_Read_AnonymousSeesPublishedOnly(t *testing.T) {
	d := PostPolicy{}.Evaluate(nil, OpRead, nil)

	require.Equal(t, AllowWithFilter, d.Effect)
	assert.Equal(t, Eq(domain.FieldStatus, "published"), d.Filter)
	assert.Equal(t, []string{"p2", "p4"}, visibleIDs(d, samplePosts()))
}

func TestPostPolicy_Read_WriterSeesOwnDraftsAndPublished(t *testing.T) {
	writer := &domain.Actor{ID: "w1", Role: domain.RoleWriter}
	d := PostPolicy{}.Evaluate(writer, OpRead, nil)

	require.Equal(t, AllowWithFilter, d.Effect)
	assert.Equal(t, []string{"p1", "p2", "p4"}, visibleIDs(d, samplePosts()))
	assert.False(t, d.Admits(&domain.Post{Author: "w2", Status: domain.StatusDraft}), "another writer's draft must stay hidden")
}

func TestPostPolicy_Read_AdminAndUserGetPublishedFilter(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleUser} {
		t.Run(string(role), func(t *testing.T) {
			d := PostPolicy{}.Evaluate(&domain.Actor{ID: "a1", Role: role}, OpRead, nil)
			require.Equal(t, AllowWithFilter, d.Effect)
			assert.Equal(t, []string{"p2", "p4"}, visibleIDs(d, samplePosts()))
		})
	}
}

func TestPostPolicy_Create(t *testing.T) {
	cases := []struct {
		name  string
		actor *domain.Actor
		want  Effect
	}{
		{"anonymous", nil, Deny},
		{"user", &domain.Actor{ID: "u", Role: domain.RoleUser}, Deny},
		{"writer", &domain.Actor{ID: "w", Role: domain.RoleWriter}, Allow},
		{"admin", &domain.Actor{ID: "a", Role: domain.RoleAdmin}, Allow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PostPolicy{}.Evaluate(tc.actor, OpCreate, nil).Effect)
		})
	}
}

func TestPostPolicy_UpdateDelete_AnyAuthenticated(t *testing.T) {
	target := &domain.Post{ID: "p3", Author: "w2"}
	for _, op := range []Operation{OpUpdate, OpDelete} {
		assert.Equal(t, Deny, PostPolicy{}.Evaluate(nil, op, target).Effect, op)
		for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleWriter, domain.RoleUser} {
			d := PostPolicy{}.Evaluate(&domain.Actor{ID: "someone", Role: role}, op, target)
			assert.Equal(t, Allow, d.Effect, "%s by %s", op, role)
		}
	}
}

func TestPostPolicy_UnknownOperationDenied(t *testing.T) {
	d := PostPolicy{}.Evaluate(&domain.Actor{ID: "a", Role: domain.RoleAdmin}, Operation("publish"), nil)
	assert.False(t, d.Permits())
}
