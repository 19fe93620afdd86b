package ports

import (
	"context"

	"github.com/contentdesk/cms/internal/core/domain"
)

// CreateMediaInput describes an uploaded image.
type CreateMediaInput struct {
	Alt      string
	Filename string
	MimeType string
	Filesize int64
}

// MediaPage is a page of media items.
type MediaPage struct {
	Docs       []*domain.Media
	TotalDocs  int64
	Page       int
	Limit      int
	TotalPages int
}

type MediaService interface {
	List(ctx context.Context, actor *domain.Actor, page, limit int) (*MediaPage, error)
	Get(ctx context.Context, actor *domain.Actor, id string) (*domain.Media, error)
	Create(ctx context.Context, actor *domain.Actor, in CreateMediaInput) (*domain.Media, error)
	UpdateAlt(ctx context.Context, actor *domain.Actor, id, alt string) (*domain.Media, error)
	Delete(ctx context.Context, actor *domain.Actor, id string) error
}
