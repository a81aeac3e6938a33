package service

import (
	"context"
	"database/sql"

	"github.com/iliyamo/screenscout/internal/events"
	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/repository"
)

// SeriesService mirrors MovieService.  Directors are a relation here, so an
// unknown director id is skipped like any other relation id.
type SeriesService struct {
	Deps
	series *repository.SeriesRepo
}

func NewSeriesService(d Deps) *SeriesService {
	return &SeriesService{Deps: d, series: repository.NewSeriesRepo(d.DB)}
}

func applySeries(s *model.Series, in model.SeriesInput, create bool) error {
	var err error
	if create {
		if s.Title, err = requiredText("title", in.Title); err != nil {
			return err
		}
		if in.ProductionYear == nil {
			return invalid("production_year is required")
		}
		if in.Rating == nil {
			return invalid("rating is required")
		}
		if in.SeasonsCount == nil {
			return invalid("seasons_count is required")
		}
		if s.Description, err = requiredText("description", in.Description); err != nil {
			return err
		}
		if s.AgeCategory, err = requiredText("age_category", in.AgeCategory); err != nil {
			return err
		}
	} else {
		if s.Title, err = optionalText("title", in.Title, s.Title); err != nil {
			return err
		}
		if s.Description, err = optionalText("description", in.Description, s.Description); err != nil {
			return err
		}
		if s.AgeCategory, err = optionalText("age_category", in.AgeCategory, s.AgeCategory); err != nil {
			return err
		}
	}
	if in.ProductionYear != nil {
		s.ProductionYear = *in.ProductionYear
	}
	if in.Rating != nil {
		s.Rating = *in.Rating
	}
	if in.SeasonsCount != nil {
		s.SeasonsCount = *in.SeasonsCount
	}
	s.PosterURL = optionalURL(in.PosterURL, s.PosterURL)
	s.TrailerURL = optionalURL(in.TrailerURL, s.TrailerURL)

	if err := checkYear(s.ProductionYear); err != nil {
		return err
	}
	if s.Rating, err = normRating(s.Rating); err != nil {
		return err
	}
	return checkPositive("seasons_count", s.SeasonsCount)
}

func replaceSeriesLinks(ctx context.Context, tx *sql.Tx, id uint64, in model.SeriesInput) error {
	for _, rel := range []struct {
		lt  repository.LinkTable
		ids []uint64
	}{
		{repository.SeriesDirectors, in.DirectorIDs},
		{repository.SeriesCountries, in.CountryIDs},
		{repository.SeriesGenres, in.GenreIDs},
		{repository.SeriesLanguages, in.LanguageIDs},
	} {
		if rel.ids == nil {
			continue
		}
		if _, err := repository.ReplaceLinks(ctx, tx, rel.lt, id, rel.ids); err != nil {
			return err
		}
	}
	return nil
}

func (s *SeriesService) Create(ctx context.Context, in model.SeriesInput) (model.Series, error) {
	var sr model.Series
	if err := applySeries(&sr, in, true); err != nil {
		return model.Series{}, err
	}
	err := repository.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := s.series.WithTx(tx).Insert(ctx, &sr); err != nil {
			return err
		}
		return replaceSeriesLinks(ctx, tx, sr.ID, in)
	})
	if err != nil {
		return model.Series{}, err
	}
	s.Log.Info("series created", "series_id", sr.ID, "title", sr.Title)
	s.publish(ctx, s.event(ctx, events.EntitySeries, events.ActionCreated, sr.ID))
	return s.series.GetByID(ctx, sr.ID)
}

func (s *SeriesService) Get(ctx context.Context, id uint64) (model.Series, error) {
	return s.series.GetByID(ctx, id)
}

func (s *SeriesService) List(ctx context.Context, f model.TitleFilter) ([]model.Series, int64, error) {
	if err := checkTitleFilter(f); err != nil {
		return nil, 0, err
	}
	return s.series.List(ctx, f)
}

func (s *SeriesService) Update(ctx context.Context, id uint64, in model.SeriesInput) (model.Series, error) {
	err := repository.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := s.series.WithTx(tx)
		sr, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := applySeries(&sr, in, false); err != nil {
			return err
		}
		if err := repo.Update(ctx, sr); err != nil {
			return err
		}
		return replaceSeriesLinks(ctx, tx, id, in)
	})
	if err != nil {
		return model.Series{}, err
	}
	s.Log.Debug("series updated", "series_id", id)
	s.publish(ctx, s.event(ctx, events.EntitySeries, events.ActionUpdated, id))
	return s.series.GetByID(ctx, id)
}

func (s *SeriesService) Delete(ctx context.Context, id uint64) error {
	if err := s.series.Delete(ctx, id); err != nil {
		return err
	}
	s.Log.Info("series deleted", "series_id", id)
	s.publish(ctx, s.event(ctx, events.EntitySeries, events.ActionDeleted, id))
	return nil
}
