package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/contentdesk/cms/internal/core/domain"
	"github.com/contentdesk/cms/internal/core/ports"
)

const (
	// ActorKey is the echo context key holding the resolved *domain.Actor.
	ActorKey = "actor"
	// TokenCookie is the cookie the admin dashboard stores its token in.
	TokenCookie = "cms-token"
)

// TokenParser resolves a bearer token to an actor.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*domain.Actor, error)
}

var _ TokenParser = (ports.AuthService)(nil)

// Auth resolves the request actor from an Authorization bearer token or the
// cms-token cookie. Requests without credentials continue anonymously;
// present but invalid credentials are rejected with 401.
func Auth(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := extractToken(c)
			if err != nil {
				return err
			}
			if token == "" {
				return next(c)
			}

			actor, err := parser.ParseToken(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrTokenRevoked) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			c.Set(ActorKey, actor)
			return next(c)
		}
	}
}

// Token returns the raw token the request authenticated with, if any.
func Token(c echo.Context) string {
	token, _ := extractToken(c)
	return token
}

func extractToken(c echo.Context) (string, error) {
	if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}
		return parts[1], nil
	}

	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", nil
}

// ActorFrom returns the actor set by Auth, or nil for anonymous requests.
func ActorFrom(c echo.Context) *domain.Actor {
	actor, _ := c.Get(ActorKey).(*domain.Actor)
	return actor
}
