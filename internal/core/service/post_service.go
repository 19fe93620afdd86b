package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/contentdesk/cms/internal/core/access"
	"github.com/contentdesk/cms/internal/core/domain"
	"github.com/contentdesk/cms/internal/core/ports"
	"github.com/contentdesk/cms/internal/pkg/metrics"
)

const collectionPosts = "posts"

type postService struct {
	repo   ports.PostRepository
	policy access.Policy
	views  *ViewCounter
	log    zerolog.Logger
	now    func() time.Time
}

// NewPostService returns a PostService enforcing access.PostPolicy. views may
// be nil, in which case reads never bump the view count.
func NewPostService(repo ports.PostRepository, views *ViewCounter, log zerolog.Logger) ports.PostService {
	return &postService{
		repo:   repo,
		policy: access.PostPolicy{},
		views:  views,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *postService) deny(actor *domain.Actor, op access.Operation) error {
	metrics.AccessDeniedTotal.WithLabelValues(collectionPosts, string(op)).Inc()
	return access.DenialError(actor)
}

// List returns the page of posts visible to actor. List reads never count
// as views.
func (s *postService) List(ctx context.Context, actor *domain.Actor, in ports.ListPostsInput) (*ports.PostPage, error) {
	dec := s.policy.Evaluate(actor, access.OpRead, nil)
	if !dec.Permits() {
		return nil, s.deny(actor, access.OpRead)
	}

	page, limit := normalizePage(in.Page, in.Limit)
	sort, err := normalizeSort(in.Sort)
	if err != nil {
		return nil, err
	}

	docs, total, err := s.repo.List(ctx, ports.ListPostsQuery{
		Access: dec,
		Sort:   sort,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return &ports.PostPage{
		Docs:       docs,
		TotalDocs:  total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Get fetches a single post through the read filter, then offers it to the
// view counter. The returned document carries the pre-increment count.
func (s *postService) Get(ctx context.Context, actor *domain.Actor, id string, meta ports.ReadMeta) (*domain.Post, error) {
	dec := s.policy.Evaluate(actor, access.OpRead, nil)
	if !dec.Permits() {
		return nil, s.deny(actor, access.OpRead)
	}

	post, err := s.repo.FindByID(ctx, id, dec)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	s.views.AfterRead(post, meta)
	return post, nil
}

func (s *postService) Create(ctx context.Context, actor *domain.Actor, in ports.CreatePostInput) (*domain.Post, error) {
	if dec := s.policy.Evaluate(actor, access.OpCreate, nil); !dec.Permits() {
		return nil, s.deny(actor, access.OpCreate)
	}

	status := domain.PostStatus(strings.TrimSpace(in.Status))
	if status == "" {
		status = domain.StatusDraft
	}
	post := &domain.Post{
		Title:   strings.TrimSpace(in.Title),
		Content: in.Content,
		Author:  in.Author,
		Status:  status,
		Tags:    normalizeTags(in.Tags),
		Image:   strings.TrimSpace(in.Image),
	}

	beforeValidatePost(access.OpCreate, actor, post)
	if err := validatePost(post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	now := s.now()
	post.Views = 0
	post.CreatedAt = now
	post.UpdatedAt = now

	if err := s.repo.Create(ctx, post); err != nil {
		s.log.Error().Err(err).Str("author", post.Author).Msg("failed to create post")
		return nil, fmt.Errorf("create post: %w", err)
	}

	metrics.PostsCreatedTotal.WithLabelValues(string(post.Status)).Inc()
	s.log.Info().Str("post_id", post.ID).Str("author", post.Author).Str("status", string(post.Status)).Msg("post created")
	return post, nil
}

func (s *postService) Update(ctx context.Context, actor *domain.Actor, id string, in ports.UpdatePostInput) (*domain.Post, error) {
	if err := beforeChangePost(access.OpUpdate, actor); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id, access.Allowed())
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if dec := s.policy.Evaluate(actor, access.OpUpdate, current); !dec.Permits() {
		return nil, s.deny(actor, access.OpUpdate)
	}

	patch, err := buildPostPatch(in)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.log.Info().Str("post_id", id).Str("actor", actor.ID).Msg("post updated")
	return updated, nil
}

func (s *postService) Delete(ctx context.Context, actor *domain.Actor, id string) error {
	if err := beforeChangePost(access.OpDelete, actor); err != nil {
		return err
	}

	current, err := s.repo.FindByID(ctx, id, access.Allowed())
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if dec := s.policy.Evaluate(actor, access.OpDelete, current); !dec.Permits() {
		return s.deny(actor, access.OpDelete)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	s.log.Info().Str("post_id", id).Str("actor", actor.ID).Msg("post deleted")
	return nil
}

func validatePost(p *domain.Post) error {
	return validateStruct(postRules{
		Title:   p.Title,
		Content: strings.TrimSpace(p.Content),
		Author:  p.Author,
		Status:  string(p.Status),
	})
}

func buildPostPatch(in ports.UpdatePostInput) (ports.PostPatch, error) {
	var (
		patch ports.PostPatch
		rules postPatchRules
	)
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		patch.Title = &title
		rules.Title = &title
	}
	if in.Content != nil {
		trimmed := strings.TrimSpace(*in.Content)
		patch.Content = in.Content
		rules.Content = &trimmed
	}
	if in.Status != nil {
		status := strings.TrimSpace(*in.Status)
		ps := domain.PostStatus(status)
		patch.Status = &ps
		rules.Status = &status
	}
	if err := validateStruct(rules); err != nil {
		return ports.PostPatch{}, err
	}
	if in.Tags != nil {
		tags := normalizeTags(*in.Tags)
		patch.Tags = &tags
	}
	if in.Image != nil {
		image := strings.TrimSpace(*in.Image)
		patch.Image = &image
	}
	return patch, nil
}

// normalizeTags trims, drops empties and removes duplicates, keeping the
// first occurrence order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func normalizeSort(sort string) (string, error) {
	switch sort {
	case "":
		return ports.SortCreatedAtDesc, nil
	case ports.SortCreatedAtDesc, ports.SortCreatedAt,
		ports.SortTitle, ports.SortTitleDesc,
		ports.SortViewsDesc, ports.SortViews:
		return sort, nil
	}
	return "", fmt.Errorf("%w: unsupported sort %q", domain.ErrValidation, sort)
}
