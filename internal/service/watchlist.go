package service

import (
	"context"
	"sort"

	"github.com/iliyamo/screenscout/internal/events"
	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/repository"
)

// WatchlistService keeps the per-user movie and series memberships and
// merges them into one feed.
type WatchlistService struct {
	Deps
	watch  *repository.WatchlistRepo
	movies *repository.MovieRepo
	series *repository.SeriesRepo
}

func NewWatchlistService(d Deps) *WatchlistService {
	return &WatchlistService{
		Deps:   d,
		watch:  repository.NewWatchlistRepo(d.DB),
		movies: repository.NewMovieRepo(d.DB),
		series: repository.NewSeriesRepo(d.DB),
	}
}

func watchEntity(kind model.Kind) events.Entity {
	if kind == model.KindSeries {
		return events.EntityWatchlistSeries
	}
	return events.EntityWatchlistMovie
}

func (s *WatchlistService) AddMovie(ctx context.Context, userID, movieID uint64) error {
	return s.Add(ctx, model.KindMovie, userID, movieID)
}

func (s *WatchlistService) AddSeries(ctx context.Context, userID, seriesID uint64) error {
	return s.Add(ctx, model.KindSeries, userID, seriesID)
}

// Add puts the item on the user's watchlist stamped with the current time.
// An unknown item is repository.ErrNotFound; an item already present is
// repository.ErrAlreadyExists and nothing is written.
func (s *WatchlistService) Add(ctx context.Context, kind model.Kind, userID, itemID uint64) error {
	var (
		ok  bool
		err error
	)
	switch kind {
	case model.KindMovie:
		ok, err = s.movies.Exists(ctx, itemID)
	case model.KindSeries:
		ok, err = s.series.Exists(ctx, itemID)
	default:
		return repository.ErrInvalidKind
	}
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}

	present, err := s.watch.Contains(ctx, kind, userID, itemID)
	if err != nil {
		return err
	}
	if present {
		return repository.ErrAlreadyExists
	}
	// a concurrent add loses on the primary key and gets ErrAlreadyExists too
	if err := s.watch.Add(ctx, kind, userID, itemID, s.now()); err != nil {
		return err
	}
	s.publish(ctx, events.NewCatalogEvent(watchEntity(kind), events.ActionAdded, itemID, userID, s.now()))
	return nil
}

// Remove takes the item off the watchlist.  kind is "movie" or "series".
func (s *WatchlistService) Remove(ctx context.Context, userID, itemID uint64, kind string) error {
	k, ok := model.ParseKind(kind)
	if !ok {
		return repository.ErrInvalidKind
	}
	if err := s.watch.Remove(ctx, k, userID, itemID); err != nil {
		return err
	}
	s.publish(ctx, events.NewCatalogEvent(watchEntity(k), events.ActionRemoved, itemID, userID, s.now()))
	return nil
}

// List returns movies and series of the user as one feed, oldest first.
// Entries added at the same instant keep movies before series.
func (s *WatchlistService) List(ctx context.Context, userID uint64) ([]model.WatchlistEntry, error) {
	movies, err := s.watch.Entries(ctx, model.KindMovie, userID)
	if err != nil {
		return nil, err
	}
	series, err := s.watch.Entries(ctx, model.KindSeries, userID)
	if err != nil {
		return nil, err
	}
	feed := append(movies, series...)
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].AddedAt.Before(feed[j].AddedAt)
	})
	return feed, nil
}
