package service

import (
	"context"
	"database/sql"

	"github.com/iliyamo/screenscout/internal/events"
	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/repository"
)

// MovieService owns movie create/read/update/delete.  A create or update
// runs the scalar write and every relation replacement in one transaction.
type MovieService struct {
	Deps
	movies  *repository.MovieRepo
	persons *repository.PersonRepo
}

func NewMovieService(d Deps) *MovieService {
	return &MovieService{
		Deps:    d,
		movies:  repository.NewMovieRepo(d.DB),
		persons: repository.NewPersonRepo(d.DB),
	}
}

// applyMovie copies every field present in in onto m and validates the
// result.  With create set, the required fields must be present.
func applyMovie(m *model.Movie, in model.MovieInput, create bool) error {
	var err error
	if create {
		if m.Title, err = requiredText("title", in.Title); err != nil {
			return err
		}
		if in.ProductionYear == nil {
			return invalid("production_year is required")
		}
		if in.DirectorID == nil || *in.DirectorID == 0 {
			return invalid("director_id is required")
		}
		if in.Rating == nil {
			return invalid("rating is required")
		}
		if m.Description, err = requiredText("description", in.Description); err != nil {
			return err
		}
		if m.AgeCategory, err = requiredText("age_category", in.AgeCategory); err != nil {
			return err
		}
		if in.Duration == nil {
			return invalid("duration is required")
		}
	} else {
		if m.Title, err = optionalText("title", in.Title, m.Title); err != nil {
			return err
		}
		if m.Description, err = optionalText("description", in.Description, m.Description); err != nil {
			return err
		}
		if m.AgeCategory, err = optionalText("age_category", in.AgeCategory, m.AgeCategory); err != nil {
			return err
		}
	}
	if in.ProductionYear != nil {
		m.ProductionYear = *in.ProductionYear
	}
	if in.DirectorID != nil {
		if *in.DirectorID == 0 {
			return invalid("director_id is required")
		}
		m.DirectorID = *in.DirectorID
	}
	if in.Rating != nil {
		m.Rating = *in.Rating
	}
	if in.Duration != nil {
		m.Duration = *in.Duration
	}
	if in.Budget != nil {
		m.Budget = in.Budget
	}
	if in.BoxOffice != nil {
		m.BoxOffice = in.BoxOffice
	}
	m.PosterURL = optionalURL(in.PosterURL, m.PosterURL)
	m.TrailerURL = optionalURL(in.TrailerURL, m.TrailerURL)

	if err := checkYear(m.ProductionYear); err != nil {
		return err
	}
	if m.Rating, err = normRating(m.Rating); err != nil {
		return err
	}
	if err := checkPositive("duration", m.Duration); err != nil {
		return err
	}
	if err := checkNonNegative("budget", m.Budget); err != nil {
		return err
	}
	return checkNonNegative("box_office", m.BoxOffice)
}

// replaceMovieLinks replaces every relation whose id list is non-nil.
func replaceMovieLinks(ctx context.Context, tx *sql.Tx, id uint64, in model.MovieInput) error {
	for _, rel := range []struct {
		lt  repository.LinkTable
		ids []uint64
	}{
		{repository.MovieCountries, in.CountryIDs},
		{repository.MovieGenres, in.GenreIDs},
		{repository.MovieLanguages, in.LanguageIDs},
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

func (s *MovieService) checkDirector(ctx context.Context, persons *repository.PersonRepo, id uint64) error {
	ok, err := persons.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return invalid("director %d does not exist", id)
	}
	return nil
}

// Create validates in, requires an existing director and stores the movie
// with its relations.  Unknown relation ids are skipped.
func (s *MovieService) Create(ctx context.Context, in model.MovieInput) (model.Movie, error) {
	var m model.Movie
	if err := applyMovie(&m, in, true); err != nil {
		return model.Movie{}, err
	}
	err := repository.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := s.checkDirector(ctx, s.persons.WithTx(tx), m.DirectorID); err != nil {
			return err
		}
		if err := s.movies.WithTx(tx).Insert(ctx, &m); err != nil {
			return err
		}
		return replaceMovieLinks(ctx, tx, m.ID, in)
	})
	if err != nil {
		return model.Movie{}, err
	}
	s.Log.Info("movie created", "movie_id", m.ID, "title", m.Title)
	s.publish(ctx, s.event(ctx, events.EntityMovie, events.ActionCreated, m.ID))
	return s.movies.GetByID(ctx, m.ID)
}

// Get returns repository.ErrNotFound for an unknown id.
func (s *MovieService) Get(ctx context.Context, id uint64) (model.Movie, error) {
	return s.movies.GetByID(ctx, id)
}

func (s *MovieService) List(ctx context.Context, f model.TitleFilter) ([]model.Movie, int64, error) {
	if err := checkTitleFilter(f); err != nil {
		return nil, 0, err
	}
	return s.movies.List(ctx, f)
}

// Update overwrites only the fields present in in.  Relation lists are
// replaced when non-nil; an empty list clears the relation.
func (s *MovieService) Update(ctx context.Context, id uint64, in model.MovieInput) (model.Movie, error) {
	err := repository.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		movies := s.movies.WithTx(tx)
		m, err := movies.GetByID(ctx, id)
		if err != nil {
			return err
		}
		prevDirector := m.DirectorID
		if err := applyMovie(&m, in, false); err != nil {
			return err
		}
		if m.DirectorID != prevDirector {
			if err := s.checkDirector(ctx, s.persons.WithTx(tx), m.DirectorID); err != nil {
				return err
			}
		}
		if err := movies.Update(ctx, m); err != nil {
			return err
		}
		return replaceMovieLinks(ctx, tx, id, in)
	})
	if err != nil {
		return model.Movie{}, err
	}
	s.Log.Debug("movie updated", "movie_id", id)
	s.publish(ctx, s.event(ctx, events.EntityMovie, events.ActionUpdated, id))
	return s.movies.GetByID(ctx, id)
}

// Delete removes the movie; relation, list and watchlist rows cascade.
func (s *MovieService) Delete(ctx context.Context, id uint64) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		return err
	}
	s.Log.Info("movie deleted", "movie_id", id)
	s.publish(ctx, s.event(ctx, events.EntityMovie, events.ActionDeleted, id))
	return nil
}

func checkTitleFilter(f model.TitleFilter) error {
	if err := checkPage(f.Page); err != nil {
		return err
	}
	if f.MinRating != nil && f.MaxRating != nil && *f.MinRating > *f.MaxRating {
		return invalid("min_rating must not exceed max_rating")
	}
	return nil
}

func checkPage(p model.Page) error {
	if p.Limit <= 0 {
		return invalid("limit must be greater than 0")
	}
	if p.Limit > model.MaxLimit {
		return invalid("limit must not exceed %d", model.MaxLimit)
	}
	if p.Offset < 0 {
		return invalid("offset must not be negative")
	}
	return nil
}
