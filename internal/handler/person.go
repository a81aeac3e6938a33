package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/service"
)

type PersonHandler struct {
	Persons *service.PersonService
}

// List accepts ?name (substring) and ?career_role_id besides paging.
func (h *PersonHandler) List(c echo.Context) error {
	var (
		f   model.PersonFilter
		err error
	)
	if f.Page, err = parsePage(c); err != nil {
		return badRequest(c, err.Error())
	}
	if f.CareerRoleID, err = queryUint(c, "career_role_id"); err != nil {
		return badRequest(c, err.Error())
	}
	f.Name = strings.TrimSpace(c.QueryParam("name"))
	persons, total, err := h.Persons.List(c.Request().Context(), f)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, newPage(persons, total, f.Page))
}

func (h *PersonHandler) Get(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	p, err := h.Persons.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PersonHandler) Create(c echo.Context) error {
	var in model.PersonInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	p, err := h.Persons.Create(c.Request().Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PersonHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var in model.PersonInput
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	p, err := h.Persons.Update(c.Request().Context(), id, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// Delete answers 409 while the person still directs a movie.
func (h *PersonHandler) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.Persons.Delete(c.Request().Context(), id); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
