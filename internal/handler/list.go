package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/service"
)

// ListHandler serves either /lists/movies or /lists/series depending on the
// service it wraps.
type ListHandler struct {
	Lists *service.ListService
}

func (h *ListHandler) List(c echo.Context) error {
	p, err := parsePage(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	lists, total, err := h.Lists.List(c.Request().Context(), p)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, newPage(lists, total, p))
}

func (h *ListHandler) Get(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	l, err := h.Lists.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *ListHandler) Create(c echo.Context) error {
	var in model.TitleListInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	l, err := h.Lists.Create(c.Request().Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *ListHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var in model.TitleListInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	l, err := h.Lists.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *ListHandler) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.Lists.Delete(c.Request().Context(), id); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
