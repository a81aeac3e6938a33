package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/service"
)

// ReferenceHandler serves one taxonomy (genres, countries, languages or
// career roles).  The router mounts one instance per kind.
type ReferenceHandler struct {
	Refs *service.ReferenceService
	Kind model.RefKind
}

type nameReq struct {
	Name string `json:"name"`
}

func (h *ReferenceHandler) List(c echo.Context) error {
	refs, err := h.Refs.List(c.Request().Context(), h.Kind)
	if err != nil {
		return respondErr(c, err)
	}
	if refs == nil {
		refs = []model.Reference{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": refs})
}

func (h *ReferenceHandler) Get(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	ref, err := h.Refs.Get(c.Request().Context(), h.Kind, id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, ref)
}

func (h *ReferenceHandler) Create(c echo.Context) error {
	var req nameReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	ref, err := h.Refs.Create(c.Request().Context(), h.Kind, req.Name)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, ref)
}

func (h *ReferenceHandler) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req nameReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	ref, err := h.Refs.Update(c.Request().Context(), h.Kind, id, req.Name)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, ref)
}

func (h *ReferenceHandler) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	if err := h.Refs.Delete(c.Request().Context(), h.Kind, id); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
