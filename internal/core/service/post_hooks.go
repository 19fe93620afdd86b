package service

import (
	"github.com/contentdesk/cms/internal/core/access"
	"github.com/contentdesk/cms/internal/core/domain"
)

// beforeValidatePost runs ahead of field validation. On create with a
// present actor it pins the author to the actor, whatever the payload said.
func beforeValidatePost(op access.Operation, actor *domain.Actor, post *domain.Post) {
	if op == access.OpCreate && actor != nil && post != nil {
		post.Author = actor.ID
	}
}

// beforeChangePost refuses anonymous updates and deletes before any
// mutation is attempted, independently of the access policy.
func beforeChangePost(op access.Operation, actor *domain.Actor) error {
	if (op == access.OpUpdate || op == access.OpDelete) && actor == nil {
		return domain.ErrAuthRequired
	}
	return nil
}
