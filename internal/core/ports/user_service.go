package ports

import (
	"context"

	"github.com/contentdesk/cms/internal/core/domain"
)

// UpdateUserInput is a partial user update. Nil fields are left unchanged.
type UpdateUserInput struct {
	Name  *string
	Email *string
	Role  *string
}

// UserPage is a page of users.
type UserPage struct {
	Docs       []*domain.User
	TotalDocs  int64
	Page       int
	Limit      int
	TotalPages int
}

type UserService interface {
	List(ctx context.Context, actor *domain.Actor, page, limit int) (*UserPage, error)
	Get(ctx context.Context, actor *domain.Actor, id string) (*domain.User, error)
	Update(ctx context.Context, actor *domain.Actor, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.Actor, id string) error
}
