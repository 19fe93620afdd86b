package ports

import (
	"context"

	"github.com/contentdesk/cms/internal/core/domain"
)

// MediaRepository defines persistence operations for media metadata.
type MediaRepository interface {
	Create(ctx context.Context, m *domain.Media) error
	FindByID(ctx context.Context, id string) (*domain.Media, error)
	List(ctx context.Context, page, limit int) ([]*domain.Media, int64, error)
	UpdateAlt(ctx context.Context, id, alt string) (*domain.Media, error)
	Delete(ctx context.Context, id string) error
}
