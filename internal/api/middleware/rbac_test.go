package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/contentdesk/cms/internal/core/domain"
)

func withActor(actor *domain.Actor) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if actor != nil {
		c.Set(ActorKey, actor)
	}
	return c, rec, e
}

func TestRequireActor_Allows(t *testing.T) {
	c, rec, _ := withActor(&domain.Actor{ID: "u1", Role: domain.RoleUser})

	called := false
	handler := RequireActor()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireActor_RejectsAnonymous(t *testing.T) {
	c, rec, e := withActor(nil)

	handler := RequireActor()(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireActor_RoleGuard(t *testing.T) {
	c, rec, e := withActor(&domain.Actor{ID: "u1", Role: domain.RoleUser})

	handler := RequireActor(domain.RoleAdmin, domain.RoleWriter)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}
