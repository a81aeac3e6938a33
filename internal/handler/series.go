package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/service"
)

// SeriesHandler serves /series the same way MovieHandler serves /movies.
type SeriesHandler struct {
	Series *service.SeriesService
}

func (h *SeriesHandler) List(c echo.Context) error {
	f, err := parseTitleFilter(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	series, total, err := h.Series.List(c.Request().Context(), f)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, newPage(series, total, f.Page))
}

func (h *SeriesHandler) Get(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	s, err := h.Series.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SeriesHandler) Create(c echo.Context) error {
	var in model.SeriesInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	s, err := h.Series.Create(c.Request().Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *SeriesHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var in model.SeriesInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	s, err := h.Series.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SeriesHandler) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.Series.Delete(c.Request().Context(), id); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
