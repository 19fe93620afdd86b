package ports

import (
	"context"

	"github.com/contentdesk/cms/internal/core/domain"
)

// ReadMeta describes how a single-record read reached the service.
type ReadMeta struct {
	// Referer is the raw Referer header of the request.
	Referer string
	// ListQuery is true when the request carried list/bulk query parameters.
	ListQuery bool
}

// ListPostsInput carries list parameters from the transport layer.
// A negative Limit selects the default page size; zero returns only the
// total count.
type ListPostsInput struct {
	Sort  string
	Page  int
	Limit int
}

// CreatePostInput is the payload of a create request. Author is accepted
// only to be overwritten by the creating actor.
type CreatePostInput struct {
	Title   string
	Content string
	Author  string
	Status  string
	Tags    []string
	Image   string
}

// UpdatePostInput is a partial update. Nil fields are left unchanged.
type UpdatePostInput struct {
	Title   *string
	Content *string
	Status  *string
	Tags    *[]string
	Image   *string
}

// PostPage is a page of posts in the list envelope used by the dashboard.
type PostPage struct {
	Docs       []*domain.Post
	TotalDocs  int64
	Page       int
	Limit      int
	TotalPages int
}

// PostService defines use-case operations for posts.
type PostService interface {
	List(ctx context.Context, actor *domain.Actor, in ListPostsInput) (*PostPage, error)
	Get(ctx context.Context, actor *domain.Actor, id string, meta ReadMeta) (*domain.Post, error)
	Create(ctx context.Context, actor *domain.Actor, in CreatePostInput) (*domain.Post, error)
	Update(ctx context.Context, actor *domain.Actor, id string, in UpdatePostInput) (*domain.Post, error)
	Delete(ctx context.Context, actor *domain.Actor, id string) error
}

// ViewScheduler accepts background view increments. Schedule never blocks;
// it returns false when the increment was dropped.
type ViewScheduler interface {
	Schedule(postID string) bool
}
