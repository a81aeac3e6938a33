package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/screenscout/internal/handler"
	"github.com/iliyamo/screenscout/internal/middleware"
	"github.com/iliyamo/screenscout/internal/model"
)

// Prefix is where every API route lives.
const Prefix = "/api/v1"

// Handlers holds one handler per resource.  References maps each taxonomy
// to the handler serving it.
type Handlers struct {
	Health      *handler.HealthHandler
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	References  map[model.RefKind]*handler.ReferenceHandler
	Movies      *handler.MovieHandler
	Series      *handler.SeriesHandler
	Persons     *handler.PersonHandler
	MovieLists  *handler.ListHandler
	SeriesLists *handler.ListHandler
	Watchlist   *handler.WatchlistHandler
}

// Guards are the middlewares routes are built from.  Cache and RateLimit
// may be pass-through when Redis is unavailable.
type Guards struct {
	JWTSecret string
	Users     middleware.UserLoader
	Cache     echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
}

// chains are the per-route middleware stacks.  Authorization runs per route
// rather than per group so unknown paths still answer 404.
type chains struct {
	any         []echo.MiddlewareFunc // any active account
	staff       []echo.MiddlewareFunc // Owner, Admin, Manager
	ownerAdmin  []echo.MiddlewareFunc
	owner       []echo.MiddlewareFunc
	publicRead  []echo.MiddlewareFunc
	staffCached []echo.MiddlewareFunc
}

func newChains(g Guards) chains {
	authed := func(lowest model.Role) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{
			middleware.JWTAuth(g.JWTSecret),
			middleware.ActiveUser(g.Users),
			middleware.RequireMinRole(lowest),
		}
	}
	cache := g.Cache
	if cache == nil {
		cache = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	staff := authed(model.RoleManager)
	return chains{
		any:         authed(model.RoleMember),
		staff:       staff,
		ownerAdmin:  authed(model.RoleAdmin),
		owner:       authed(model.RoleOwner),
		publicRead:  []echo.MiddlewareFunc{cache},
		staffCached: append(staff[:len(staff):len(staff)], cache),
	}
}

// Register mounts every route on e.
func Register(e *echo.Echo, h Handlers, g Guards) {
	api := e.Group(Prefix)
	if g.RateLimit != nil {
		api.Use(g.RateLimit)
	}
	c := newChains(g)

	api.GET("/healthcheck", h.Health.Health)
	registerAuth(api, h, c)
	registerCatalog(api, h, c)
	registerWatchlist(api, h, c)
}

// registerAuth mounts the token endpoints and account administration.
func registerAuth(api *echo.Group, h Handlers, c chains) {
	a := api.Group("/auth")
	a.POST("/signup", h.Auth.Signup)
	a.POST("/signin", h.Auth.Signin)
	a.POST("/refresh", h.Auth.Refresh)
	// logout takes a refresh token, a bearer token or both, so it is public
	a.POST("/logout", h.Auth.Logout)

	api.GET("/users/me", h.Users.Me, c.any...)
	api.PUT("/users/me", h.Users.UpdateMe, c.any...)
	api.PATCH("/users/me", h.Users.UpdateMe, c.any...)
	api.GET("/users", h.Users.List, c.ownerAdmin...)
	api.GET("/users/:id", h.Users.Get, c.any...)
	api.PUT("/users/:id/role", h.Users.SetRole, c.owner...)
	api.PUT("/users/:id/active", h.Users.SetActive, c.ownerAdmin...)
}

func registerWatchlist(api *echo.Group, h Handlers, c chains) {
	api.GET("/watchlist", h.Watchlist.List, c.any...)
	api.POST("/watchlist/movies/:id", h.Watchlist.AddMovie, c.any...)
	api.POST("/watchlist/series/:id", h.Watchlist.AddSeries, c.any...)
	api.DELETE("/watchlist/:kind/:id", h.Watchlist.Remove, c.any...)
}
