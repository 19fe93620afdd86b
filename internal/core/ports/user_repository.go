package ports

import (
	"context"

	"github.com/contentdesk/cms/internal/core/access"
	"github.com/contentdesk/cms/internal/core/domain"
)

// UserPatch lists the fields an update may change. Nil means unchanged.
type UserPatch struct {
	Name  *string
	Email *string
	Role  *domain.Role
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, dec access.Decision, page, limit int) ([]*domain.User, int64, error)
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
