package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/service"
)

// MovieHandler serves /movies.  Reads are public, writes are gated by the
// router.  PUT and PATCH share Update: absent fields are left unchanged
// either way.
type MovieHandler struct {
	Movies *service.MovieService
}

func (h *MovieHandler) List(c echo.Context) error {
	f, err := parseTitleFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	movies, total, err := h.Movies.List(c.Request().Context(), f)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, newPage(movies, total, f.Page))
}

func (h *MovieHandler) Get(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	m, err := h.Movies.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MovieHandler) Create(c echo.Context) error {
	var in model.MovieInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	m, err := h.Movies.Create(c.Request().Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *MovieHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var in model.MovieInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	m, err := h.Movies.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MovieHandler) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
