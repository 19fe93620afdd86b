package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/contentdesk/cms/internal/api/middleware"
	"github.com/contentdesk/cms/internal/core/domain"
	"github.com/contentdesk/cms/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubPostService struct {
	listIn    ports.ListPostsInput
	getMeta   ports.ReadMeta
	getActor  *domain.Actor
	createIn  ports.CreatePostInput
	updateIn  ports.UpdatePostInput
	deletedID string
	err       error
}

func (s *stubPostService) List(_ context.Context, _ *domain.Actor, in ports.ListPostsInput) (*ports.PostPage, error) {
	s.listIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &ports.PostPage{Docs: []*domain.Post{{ID: "p1", Title: "Hello"}}, TotalDocs: 1, Page: 1, Limit: 10, TotalPages: 1}, nil
}

func (s *stubPostService) Get(_ context.Context, actor *domain.Actor, id string, meta ports.ReadMeta) (*domain.Post, error) {
	s.getActor = actor
	s.getMeta = meta
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Post{ID: id, Title: "Hello", Views: 7}, nil
}

func (s *stubPostService) Create(_ context.Context, actor *domain.Actor, in ports.CreatePostInput) (*domain.Post, error) {
	s.createIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Post{ID: "p9", Title: in.Title, Author: actor.ID}, nil
}

func (s *stubPostService) Update(_ context.Context, _ *domain.Actor, id string, in ports.UpdatePostInput) (*domain.Post, error) {
	s.updateIn = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Post{ID: id}, nil
}

func (s *stubPostService) Delete(_ context.Context, _ *domain.Actor, id string) error {
	s.deletedID = id
	return s.err
}

type stubAuthService struct {
	registerFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	loggedOut  string
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.loggedOut = token
	return nil
}

func (s *stubAuthService) ParseToken(_ context.Context, _ string) (*domain.Actor, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) Me(_ context.Context, actor *domain.Actor) (*domain.User, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.User{ID: actor.ID, Role: actor.Role}, nil
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

// ---------------------------------------------------------------------------
// Posts
// ---------------------------------------------------------------------------

func TestPostHandler_Get_PlainReadMeta(t *testing.T) {
	svc := &stubPostService{}
	h := NewPostHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/posts/p1", "")
	c.Request().Header.Set("Referer", "https://blog.example.com/posts/hello")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set(middleware.ActorKey, &domain.Actor{ID: "w1", Role: domain.RoleWriter})

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.getMeta.ListQuery {
		t.Fatalf("plain read flagged as list query")
	}
	if svc.getMeta.Referer != "https://blog.example.com/posts/hello" {
		t.Fatalf("referer not forwarded: %q", svc.getMeta.Referer)
	}
	if svc.getActor == nil || svc.getActor.ID != "w1" {
		t.Fatalf("actor not forwarded")
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body["id"] != "p1" || body["views"] != float64(7) {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestPostHandler_Get_ListQueryParams(t *testing.T) {
	for _, q := range []string{"limit=4", "page=2", "sort=-createdAt", "where%5Bstatus%5D%5Bequals%5D=published", "depth=1"} {
		svc := &stubPostService{}
		h := NewPostHandler(svc)

		c, _ := newContext(http.MethodGet, "/api/posts/p1?"+q, "")
		c.SetParamNames("id")
		c.SetParamValues("p1")

		if err := h.Get(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if !svc.getMeta.ListQuery {
			t.Fatalf("query %q must be flagged as list query", q)
		}
	}
}

func TestPostHandler_Get_NotFoundPropagates(t *testing.T) {
	h := NewPostHandler(&stubPostService{err: domain.ErrPostNotFound})
	c, _ := newContext(http.MethodGet, "/api/posts/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Get(c); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostHandler_List_Paging(t *testing.T) {
	svc := &stubPostService{}
	h := NewPostHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/posts?limit=4&sort=-createdAt", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.listIn.Limit != 4 || svc.listIn.Page != 1 || svc.listIn.Sort != "-createdAt" {
		t.Fatalf("unexpected list input: %+v", svc.listIn)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	for _, k := range []string{"docs", "totalDocs", "page", "limit", "totalPages"} {
		if _, ok := body[k]; !ok {
			t.Fatalf("missing %q in list envelope: %v", k, body)
		}
	}

	c, _ = newContext(http.MethodGet, "/api/posts", "")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.listIn.Limit != -1 {
		t.Fatalf("absent limit must be reported as -1, got %d", svc.listIn.Limit)
	}

	c, _ = newContext(http.MethodGet, "/api/posts?limit=ten", "")
	if code := statusOf(t, h.List(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestPostHandler_Create_PassesPayload(t *testing.T) {
	svc := &stubPostService{}
	h := NewPostHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/posts", `{"title":"T","content":"C","author":"someone-else","tags":["a"],"views":99}`)
	c.Set(middleware.ActorKey, &domain.Actor{ID: "w1", Role: domain.RoleWriter})

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.createIn.Title != "T" || svc.createIn.Author != "someone-else" || len(svc.createIn.Tags) != 1 {
		t.Fatalf("unexpected create input: %+v", svc.createIn)
	}
}

func TestPostHandler_Update_PartialPayload(t *testing.T) {
	svc := &stubPostService{}
	h := NewPostHandler(svc)

	c, _ := newContext(http.MethodPatch, "/api/posts/p1", `{"status":"published"}`)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	c.Set(middleware.ActorKey, &domain.Actor{ID: "w1", Role: domain.RoleWriter})

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if svc.updateIn.Status == nil || *svc.updateIn.Status != "published" {
		t.Fatalf("status not forwarded")
	}
	if svc.updateIn.Title != nil || svc.updateIn.Content != nil {
		t.Fatalf("absent fields must stay nil: %+v", svc.updateIn)
	}
}

func TestPostHandler_Delete(t *testing.T) {
	svc := &stubPostService{}
	h := NewPostHandler(svc)

	c, rec := newContext(http.MethodDelete, "/api/posts/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || svc.deletedID != "p1" {
		t.Fatalf("unexpected result: code=%d id=%q", rec.Code, svc.deletedID)
	}
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, name, email, password string) (*domain.User, error) {
			if name != "Alice" || email != "alice@example.com" || password != "long-password" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return &domain.User{ID: "u1", Name: name, Email: email, Role: domain.RoleUser, PasswordHash: "hash"}, nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newContext(http.MethodPost, "/api/users", `{"name":"Alice","email":"alice@example.com","password":"long-password"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash must not be serialised")
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, _ := newContext(http.MethodPost, "/api/users", `{"name":"Bob","email":"bob@example.com","password":"short"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	long := strings.Repeat("x", 73)
	c, _ = newContext(http.MethodPost, "/api/users", `{"name":"Bob","email":"bob@example.com","password":"`+long+`"}`)
	err := h.Register(c)
	if !errors.Is(err, domain.ErrValidation) || !strings.Contains(err.Error(), "password must be at most 72") {
		t.Fatalf("expected ErrValidation for an over-long password, got %v", err)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, string, string, string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub, false)

	c, _ := newContext(http.MethodPost, "/api/users", `{"name":"Bob","email":"bob@example.com","password":"long-password"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			return "signed.jwt.token", &domain.User{ID: "u1", Email: email}, nil
		},
	}
	h := NewAuthHandler(stub, true)

	c, rec := newContext(http.MethodPost, "/api/users/login", `{"email":"alice@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != middleware.TokenCookie || cookies[0].Value != "signed.jwt.token" {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
	if !cookies[0].HttpOnly || !cookies[0].Secure {
		t.Fatalf("cookie must be HttpOnly and Secure")
	}
}

func TestAuthHandler_Login_Locked(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrAccountLocked
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newContext(http.MethodPost, "/api/users/login", `{"email":"alice@example.com","password":"secret"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked, got %v", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie on failed login")
	}
}

func TestAuthHandler_LogoutAndMe(t *testing.T) {
	stub := &stubAuthService{}
	h := NewAuthHandler(stub, false)

	c, rec := newContext(http.MethodPost, "/api/users/logout", "")
	c.Request().Header.Set("Authorization", "Bearer abc")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.loggedOut != "abc" {
		t.Fatalf("token not passed to Logout, got %q", stub.loggedOut)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected cookie to be cleared: %+v", cookies)
	}

	c, rec = newContext(http.MethodGet, "/api/users/me", "")
	c.Set(middleware.ActorKey, &domain.Actor{ID: "u1", Role: domain.RoleUser})
	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// Health
// ---------------------------------------------------------------------------

// ---------------------------------------------------------------------------
// Media
// ---------------------------------------------------------------------------

type stubMediaService struct {
	ports.MediaService
	createActor *domain.Actor
	createIn    ports.CreateMediaInput
	updatedAlt  string
}

func (s *stubMediaService) Create(_ context.Context, actor *domain.Actor, in ports.CreateMediaInput) (*domain.Media, error) {
	s.createActor = actor
	s.createIn = in
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Media{ID: "m1", Alt: in.Alt}, nil
}

func (s *stubMediaService) UpdateAlt(_ context.Context, actor *domain.Actor, id, alt string) (*domain.Media, error) {
	s.updatedAlt = alt
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return &domain.Media{ID: id, Alt: alt}, nil
}

func TestMediaHandler_Create_AnonymousEmptyBodyReachesPolicy(t *testing.T) {
	svc := &stubMediaService{}
	h := NewMediaHandler(svc)

	c, _ := newContext(http.MethodPost, "/api/media", `{}`)
	if err := h.Create(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated from the service, got %v", err)
	}
	if svc.createActor != nil {
		t.Fatalf("expected anonymous actor, got %+v", svc.createActor)
	}
}

func TestMediaHandler_CreateAndUpdate(t *testing.T) {
	svc := &stubMediaService{}
	h := NewMediaHandler(svc)
	actor := &domain.Actor{ID: "u1", Role: domain.RoleUser}

	c, rec := newContext(http.MethodPost, "/api/media", `{"alt":"Cover","filename":"c.png","mimeType":"image/png","filesize":10}`)
	c.Set(middleware.ActorKey, actor)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.createIn.MimeType != "image/png" || svc.createIn.Filesize != 10 {
		t.Fatalf("unexpected input: %+v", svc.createIn)
	}

	c, rec = newContext(http.MethodPatch, "/api/media/m1", `{"alt":"New"}`)
	c.SetParamNames("id")
	c.SetParamValues("m1")
	c.Set(middleware.ActorKey, actor)
	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK || svc.updatedAlt != "New" {
		t.Fatalf("unexpected update: %d %q", rec.Code, svc.updatedAlt)
	}
}

func TestHealthDependenciesHandler_Readiness(t *testing.T) {
	ok := DependencyCheck{Name: "mongodb", Check: func(context.Context) error { return nil }}
	down := DependencyCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	c, rec := newContext(http.MethodGet, "/health/ready", "")
	if err := NewHealthDependenciesHandler(ok).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, rec = newContext(http.MethodGet, "/health/ready", "")
	if err := NewHealthDependenciesHandler(ok, down).Readiness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "degraded" || resp.Dependencies["redis"].Status != "unhealthy" || resp.Dependencies["mongodb"].Status != "ok" {
		t.Fatalf("unexpected readiness payload: %+v", resp)
	}
}

func TestValidator_FieldMessages(t *testing.T) {
	v := NewValidator()
	err := v.Validate(&registerRequest{Name: "", Email: "nope", Password: "x"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, want := range []string{"name is required", "email must be a valid email", "password must be at least 8 characters"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}
}
