package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/screenscout/internal/model"
)

// crud is the handler set every catalog resource implements.
type crud interface {
	List(echo.Context) error
	Get(echo.Context) error
	Create(echo.Context) error
	Update(echo.Context) error
	Delete(echo.Context) error
}

// mount registers list/get with read and create/update/delete with write.
// PUT and PATCH both map to Update.
func mount(api *echo.Group, path string, h crud, read, write []echo.MiddlewareFunc) {
	api.GET(path, h.List, read...)
	api.GET(path+"/:id", h.Get, read...)
	api.POST(path, h.Create, write...)
	api.PUT(path+"/:id", h.Update, write...)
	api.PATCH(path+"/:id", h.Update, write...)
	api.DELETE(path+"/:id", h.Delete, write...)
}

// registerCatalog mounts reference taxonomies (staff only, reads included)
// and the public catalog (reads open to everyone, writes staff only).
func registerCatalog(api *echo.Group, h Handlers, c chains) {
	for _, kind := range model.RefKinds {
		if rh, ok := h.References[kind]; ok {
			mount(api, "/"+string(kind), rh, c.staffCached, c.staff)
		}
	}
	mount(api, "/movies", h.Movies, c.publicRead, c.staff)
	mount(api, "/series", h.Series, c.publicRead, c.staff)
	mount(api, "/persons", h.Persons, c.publicRead, c.staff)
	mount(api, "/lists/movies", h.MovieLists, c.publicRead, c.staff)
	mount(api, "/lists/series", h.SeriesLists, c.publicRead, c.staff)
}
