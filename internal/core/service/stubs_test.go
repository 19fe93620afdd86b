package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/contentdesk/cms/internal/core/access"
	"github.com/contentdesk/cms/internal/core/domain"
	"github.com/contentdesk/cms/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory post repository
// ---------------------------------------------------------------------------

// stubPostRepo applies read decisions with Decision.Admits, the same
// semantics the Mongo repository expresses as a query.
type stubPostRepo struct {
	mu           sync.Mutex
	posts        map[string]*domain.Post
	seq          int
	lastQuery    ports.ListPostsQuery
	incrementErr error
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func clonePost(p *domain.Post) *domain.Post {
	clone := *p
	clone.Tags = append([]string(nil), p.Tags...)
	return &clone
}

// seed stores p as-is and returns its id.
func (r *stubPostRepo) seed(p domain.Post) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if p.ID == "" {
		p.ID = fmt.Sprintf("p%d", r.seq)
	}
	r.posts[p.ID] = clonePost(&p)
	return p.ID
}

func (r *stubPostRepo) stored(id string) *domain.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil
	}
	return clonePost(p)
}

func (r *stubPostRepo) Create(_ context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	p.ID = fmt.Sprintf("p%d", r.seq)
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string, dec access.Decision) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok || !dec.Admits(p) {
		return nil, domain.ErrPostNotFound
	}
	return clonePost(p), nil
}

func (r *stubPostRepo) List(_ context.Context, q ports.ListPostsQuery) ([]*domain.Post, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = q

	var matched []*domain.Post
	for _, p := range r.posts {
		if q.Access.Admits(p) {
			matched = append(matched, clonePost(p))
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	if q.Limit == 0 {
		return []*domain.Post{}, total, nil
	}
	skip := (q.Page - 1) * q.Limit
	if skip > len(matched) {
		return []*domain.Post{}, total, nil
	}
	end := skip + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubPostRepo) Update(_ context.Context, id string, patch ports.PostPatch) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Tags != nil {
		p.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	p.UpdatedAt = time.Now().UTC()
	return clonePost(p), nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) IncrementViews(_ context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incrementErr != nil {
		return r.incrementErr
	}
	p, ok := r.posts[postID]
	if !ok {
		return domain.ErrPostNotFound
	}
	p.Views++
	return nil
}

// ---------------------------------------------------------------------------
// View schedulers
// ---------------------------------------------------------------------------

// recordingScheduler remembers scheduled ids without applying them.
type recordingScheduler struct {
	mu     sync.Mutex
	ids    []string
	reject bool
}

func (s *recordingScheduler) Schedule(postID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reject {
		return false
	}
	s.ids = append(s.ids, postID)
	return true
}

func (s *recordingScheduler) scheduled() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ids...)
}

// syncScheduler applies increments inline and swallows errors, like a
// dispatcher worker would.
type syncScheduler struct {
	store ports.ViewIncrementer
}

func (s syncScheduler) Schedule(postID string) bool {
	_ = s.store.IncrementViews(context.Background(), postID)
	return true
}

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) seed(u domain.User) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	if u.ID == "" {
		u.ID = fmt.Sprintf("u%d", r.seq)
	}
	r.users[u.ID] = cloneUser(&u)
	return u.ID
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("u%d", r.seq)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, dec access.Decision, page, limit int) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.users {
		if dec.Admits(u) {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch ports.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// ---------------------------------------------------------------------------
// In-memory media repository
// ---------------------------------------------------------------------------

type stubMediaRepo struct {
	items map[string]*domain.Media
	seq   int
}

func newStubMediaRepo() *stubMediaRepo {
	return &stubMediaRepo{items: make(map[string]*domain.Media)}
}

func (r *stubMediaRepo) Create(_ context.Context, m *domain.Media) error {
	r.seq++
	m.ID = fmt.Sprintf("m%d", r.seq)
	clone := *m
	r.items[m.ID] = &clone
	return nil
}

func (r *stubMediaRepo) FindByID(_ context.Context, id string) (*domain.Media, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrMediaNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubMediaRepo) List(_ context.Context, page, limit int) ([]*domain.Media, int64, error) {
	out := make([]*domain.Media, 0, len(r.items))
	for _, m := range r.items {
		clone := *m
		out = append(out, &clone)
	}
	return out, int64(len(out)), nil
}

func (r *stubMediaRepo) UpdateAlt(_ context.Context, id, alt string) (*domain.Media, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrMediaNotFound
	}
	m.Alt = alt
	clone := *m
	return &clone, nil
}

func (r *stubMediaRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrMediaNotFound
	}
	delete(r.items, id)
	return nil
}

// ---------------------------------------------------------------------------
// Actors
// ---------------------------------------------------------------------------

var (
	adminActor = &domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	writerA    = &domain.Actor{ID: "writer-a", Role: domain.RoleWriter}
	writerB    = &domain.Actor{ID: "writer-b", Role: domain.RoleWriter}
	plainUser  = &domain.Actor{ID: "user-1", Role: domain.RoleUser}
	noActor    *domain.Actor
)
