package router

import (
	"github.com/iliyamo/screenscout/internal/config"
	"github.com/iliyamo/screenscout/internal/handler"
	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/service"
)

// NewHandlers builds every handler on top of one set of service deps.
func NewHandlers(d service.Deps, cfg config.Config) Handlers {
	users := service.NewUserService(d, cfg)
	refs := service.NewReferenceService(d)
	byKind := make(map[model.RefKind]*handler.ReferenceHandler, len(model.RefKinds))
	for _, k := range model.RefKinds {
		byKind[k] = &handler.ReferenceHandler{Refs: refs, Kind: k}
	}
	return Handlers{
		Health:      &handler.HealthHandler{DB: d.DB},
		Auth:        handler.NewAuthHandler(users, cfg.JWTSecret),
		Users:       &handler.UserHandler{Users: users},
		References:  byKind,
		Movies:      &handler.MovieHandler{Movies: service.NewMovieService(d)},
		Series:      &handler.SeriesHandler{Series: service.NewSeriesService(d)},
		Persons:     &handler.PersonHandler{Persons: service.NewPersonService(d)},
		MovieLists:  &handler.ListHandler{Lists: service.NewMovieListService(d)},
		SeriesLists: &handler.ListHandler{Lists: service.NewSeriesListService(d)},
		Watchlist:   &handler.WatchlistHandler{Watchlist: service.NewWatchlistService(d)},
	}
}
