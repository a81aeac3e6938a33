package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/screenscout/internal/events"
	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/repository"
)

// ListService manages either movie lists or series lists.
type ListService struct {
	Deps
	lists  *repository.ListRepo
	entity events.Entity
}

func NewMovieListService(d Deps) *ListService {
	return &ListService{Deps: d, lists: repository.NewMovieListRepo(d.DB), entity: events.EntityMovieList}
}

func NewSeriesListService(d Deps) *ListService {
	return &ListService{Deps: d, lists: repository.NewSeriesListRepo(d.DB), entity: events.EntitySeriesList}
}

func (s *ListService) Create(ctx context.Context, in model.TitleListInput) (model.TitleList, error) {
	var l model.TitleList
	var err error
	if l.Name, err = requiredText("name", in.Name); err != nil {
		return model.TitleList{}, err
	}
	if in.Description != nil {
		l.Description = strings.TrimSpace(*in.Description)
	}
	err = repository.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := s.lists.WithTx(tx).Insert(ctx, &l); err != nil {
			return err
		}
		if in.ItemIDs == nil {
			return nil
		}
		_, err := repository.ReplaceLinks(ctx, tx, s.lists.Members(), l.ID, in.ItemIDs)
		return err
	})
	if err != nil {
		return model.TitleList{}, err
	}
	s.publish(ctx, s.event(ctx, s.entity, events.ActionCreated, l.ID))
	return s.lists.GetByID(ctx, l.ID)
}

func (s *ListService) Get(ctx context.Context, id uint64) (model.TitleList, error) {
	return s.lists.GetByID(ctx, id)
}

func (s *ListService) List(ctx context.Context, p model.Page) ([]model.TitleList, int64, error) {
	if err := checkPage(p); err != nil {
		return nil, 0, err
	}
	return s.lists.List(ctx, p)
}

func (s *ListService) Update(ctx context.Context, id uint64, in model.TitleListInput) (model.TitleList, error) {
	err := repository.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := s.lists.WithTx(tx)
		l, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if l.Name, err = optionalText("name", in.Name, l.Name); err != nil {
			return err
		}
		if in.Description != nil {
			l.Description = strings.TrimSpace(*in.Description)
		}
		if err := repo.Update(ctx, l); err != nil {
			return err
		}
		if in.ItemIDs == nil {
			return nil
		}
		_, err = repository.ReplaceLinks(ctx, tx, s.lists.Members(), id, in.ItemIDs)
		return err
	})
	if err != nil {
		return model.TitleList{}, err
	}
	s.publish(ctx, s.event(ctx, s.entity, events.ActionUpdated, id))
	return s.lists.GetByID(ctx, id)
}

func (s *ListService) Delete(ctx context.Context, id uint64) error {
	if err := s.lists.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, s.event(ctx, s.entity, events.ActionDeleted, id))
	return nil
}
