package ports

import (
	"context"

	"github.com/contentdesk/cms/internal/core/access"
	"github.com/contentdesk/cms/internal/core/domain"
)

// Sort keys accepted by ListPostsQuery. A leading '-' means descending.
const (
	SortCreatedAtDesc = "-createdAt"
	SortCreatedAt     = "createdAt"
	SortTitle         = "title"
	SortTitleDesc     = "-title"
	SortViewsDesc     = "-views"
	SortViews         = "views"
)

// ListPostsQuery carries everything the repository needs to list posts.
// Access is the decision produced by the read policy; the repository applies
// its filter verbatim.
type ListPostsQuery struct {
	Access access.Decision
	Sort   string
	Page   int // 1-based
	Limit  int // 0 = count only
}

// PostPatch lists the fields an update may change. Nil means unchanged.
// Author, views and creation time are deliberately absent.
type PostPatch struct {
	Title   *string
	Content *string
	Status  *domain.PostStatus
	Tags    *[]string
	Image   *string
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	// FindByID retrieves a post, constrained by the read decision. A post
	// excluded by the decision is reported as domain.ErrPostNotFound.
	FindByID(ctx context.Context, id string, dec access.Decision) (*domain.Post, error)
	List(ctx context.Context, q ListPostsQuery) ([]*domain.Post, int64, error)
	Update(ctx context.Context, id string, patch PostPatch) (*domain.Post, error)
	Delete(ctx context.Context, id string) error
}

// ViewIncrementer is the elevated write used by the view counter. It
// bypasses access policy entirely.
type ViewIncrementer interface {
	IncrementViews(ctx context.Context, postID string) error
}
