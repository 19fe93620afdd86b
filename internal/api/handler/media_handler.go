package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contentdesk/cms/internal/core/ports"
)

// MediaHandler handles HTTP requests for media metadata.
type MediaHandler struct {
	service ports.MediaService
}

func NewMediaHandler(service ports.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// List handles GET /api/media.
//
// @Summary      List media
// @Tags         media
// @Produce      json
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  mediaPageResponse
// @Router       /api/media [get]
func (h *MediaHandler) List(c echo.Context) error {
	page, limit, err := paging(c)
	if err != nil {
		return err
	}
	result, err := h.service.List(c.Request().Context(), ctxActor(c), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMediaPageResponse(result))
}

// Get handles GET /api/media/:id.
//
// @Summary      Get a media item
// @Tags         media
// @Produce      json
// @Param        id   path      string  true  "Media id"
// @Success      200  {object}  domain.Media
// @Failure      404  {object}  errorResponse
// @Router       /api/media/{id} [get]
func (h *MediaHandler) Get(c echo.Context) error {
	m, err := h.service.Get(c.Request().Context(), ctxActor(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /api/media. Only metadata is stored.
//
// @Summary      Register a media item
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMediaRequest  true  "Media metadata"
// @Success      201   {object}  domain.Media
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/media [post]
func (h *MediaHandler) Create(c echo.Context) error {
	var req createMediaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	m, err := h.service.Create(c.Request().Context(), ctxActor(c), toCreateMediaInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// Update handles PATCH /api/media/:id.
//
// @Summary      Update media alt text
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Media id"
// @Param        body  body      updateMediaRequest  true  "Alt text"
// @Success      200   {object}  domain.Media
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/media/{id} [patch]
func (h *MediaHandler) Update(c echo.Context) error {
	var req updateMediaRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	m, err := h.service.UpdateAlt(c.Request().Context(), ctxActor(c), c.Param("id"), req.Alt)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /api/media/:id.
//
// @Summary      Delete a media item
// @Tags         media
// @Security     BearerAuth
// @Param        id   path  string  true  "Media id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/media/{id} [delete]
func (h *MediaHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), ctxActor(c), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
