package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contentdesk/cms/internal/core/domain"
)

// RequireActor rejects anonymous requests with 401. When roles are given,
// actors holding none of them are rejected with 403.
func RequireActor(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := ActorFrom(c)
			if actor == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if len(allowed) > 0 {
				if _, ok := allowed[actor.Role]; !ok {
					return echo.NewHTTPError(http.StatusForbidden, "forbidden")
				}
			}
			return next(c)
		}
	}
}
