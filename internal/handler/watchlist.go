package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/screenscout/internal/middleware"
	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/service"
)

// WatchlistHandler serves the caller's own watchlist.  The user always
// comes from the access token, never from the URL.
type WatchlistHandler struct {
	Watchlist *service.WatchlistService
}

// List returns movies and series in one feed, oldest addition first.
func (h *WatchlistHandler) List(c echo.Context) error {
	uid, _ := middleware.UserID(c)
	feed, err := h.Watchlist.List(c.Request().Context(), uid)
	if err != nil {
		return respondErr(c, err)
	}
	if feed == nil {
		feed = []model.WatchlistEntry{}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": feed})
}

func (h *WatchlistHandler) AddMovie(c echo.Context) error {
	return h.add(c, model.KindMovie)
}

func (h *WatchlistHandler) AddSeries(c echo.Context) error {
	return h.add(c, model.KindSeries)
}

func (h *WatchlistHandler) add(c echo.Context, kind model.Kind) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	uid, _ := middleware.UserID(c)
	if err := h.Watchlist.Add(c.Request().Context(), kind, uid, id); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"kind": kind, "item_id": id})
}

// Remove handles DELETE /watchlist/:kind/:id with kind "movie" or "series".
func (h *WatchlistHandler) Remove(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid id")
	}
	uid, _ := middleware.UserID(c)
	if err := h.Watchlist.Remove(c.Request().Context(), uid, id, c.Param("kind")); err != nil {
		return respondErr(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
