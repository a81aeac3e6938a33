package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/screenscout/internal/middleware"
	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/service"
)

// UserHandler serves the account endpoints.
type UserHandler struct {
	Users *service.UserService
}

type roleReq struct {
	Role string `json:"role"`
}

type activeReq struct {
	IsActive *bool `json:"is_active"`
}

// Me returns the caller's account.
func (h *UserHandler) Me(c echo.Context) error {
	id, _ := middleware.UserID(c)
	u, err := h.Users.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// UpdateMe applies a partial update to the caller's username, email or
// password.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var in service.ProfileUpdate
	if err := c.Bind(&in); err != nil {
		return badRequest(c, "invalid body")
	}
	id, _ := middleware.UserID(c)
	u, err := h.Users.UpdateProfile(c.Request().Context(), id, in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) List(c echo.Context) error {
	p, err := parsePage(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	users, err := h.Users.List(c.Request().Context(), p)
	if err != nil {
		return respondErr(c, err)
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": users})
}

// Get returns any account by id.  Members can read only their own.
func (h *UserHandler) Get(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	self, _ := middleware.UserID(c)
	if id != self && !middleware.Role(c).AtLeast(model.RoleManager) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	u, err := h.Users.Get(c.Request().Context(), id)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) SetRole(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req roleReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	u, err := h.Users.SetRole(c.Request().Context(), id, model.Role(req.Role))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *UserHandler) SetActive(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	var req activeReq
	if err := c.Bind(&req); err != nil || req.IsActive == nil {
		return badRequest(c, "is_active required")
	}
	u, err := h.Users.SetActive(c.Request().Context(), id, *req.IsActive)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, u)
}
