package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/contentdesk/cms/internal/api/middleware"
	"github.com/contentdesk/cms/internal/core/domain"
	"github.com/contentdesk/cms/internal/core/ports"
)

// listQueryParams are the query parameters that mark a request as a list or
// bulk query rather than a plain document view.
var listQueryParams = []string{"limit", "page", "sort", "where", "depth"}

// ctxActor returns the actor resolved by the Auth middleware; nil means the
// request is anonymous.
func ctxActor(c echo.Context) *domain.Actor {
	return middleware.ActorFrom(c)
}

// readMeta describes how a single-document read reached the API.
func readMeta(c echo.Context) ports.ReadMeta {
	return ports.ReadMeta{
		Referer:   c.Request().Referer(),
		ListQuery: hasListParams(c.QueryParams()),
	}
}

// hasListParams matches plain keys (limit=4) as well as bracketed ones
// (where[status][equals]=published).
func hasListParams(params url.Values) bool {
	for key := range params {
		for _, p := range listQueryParams {
			if key == p || strings.HasPrefix(key, p+"[") {
				return true
			}
		}
	}
	return false
}

// paging reads page and limit. An absent limit is reported as -1 so the
// service applies its default; limit=0 is a count-only query.
func paging(c echo.Context) (page, limit int, err error) {
	page, limit = 1, -1
	err = echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}
	return page, limit, nil
}
