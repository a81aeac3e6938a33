package service

import (
	"context"
	"database/sql"

	"github.com/iliyamo/screenscout/internal/events"
	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/repository"
)

type PersonService struct {
	Deps
	persons *repository.PersonRepo
}

func NewPersonService(d Deps) *PersonService {
	return &PersonService{Deps: d, persons: repository.NewPersonRepo(d.DB)}
}

func applyPerson(p *model.Person, in model.PersonInput, create bool) error {
	var err error
	if create {
		p.Name, err = requiredText("name", in.Name)
	} else {
		p.Name, err = optionalText("name", in.Name, p.Name)
	}
	if err != nil {
		return err
	}
	if in.Height != nil {
		if err := checkPositive("height", *in.Height); err != nil {
			return err
		}
		p.Height = in.Height
	}
	if in.Birthday != nil && !in.Birthday.IsZero() {
		p.Birthday = in.Birthday
	}
	return nil
}

func replacePersonLinks(ctx context.Context, tx *sql.Tx, id uint64, in model.PersonInput) error {
	if in.CareerRoleIDs != nil {
		if _, err := repository.ReplaceLinks(ctx, tx, repository.PersonRoles, id, in.CareerRoleIDs); err != nil {
			return err
		}
	}
	if in.GenreIDs != nil {
		if _, err := repository.ReplaceLinks(ctx, tx, repository.PersonGenres, id, in.GenreIDs); err != nil {
			return err
		}
	}
	return nil
}

func (s *PersonService) Create(ctx context.Context, in model.PersonInput) (model.Person, error) {
	var p model.Person
	if err := applyPerson(&p, in, true); err != nil {
		return model.Person{}, err
	}
	err := repository.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if err := s.persons.WithTx(tx).Insert(ctx, &p); err != nil {
			return err
		}
		return replacePersonLinks(ctx, tx, p.ID, in)
	})
	if err != nil {
		return model.Person{}, err
	}
	s.Log.Info("person created", "person_id", p.ID)
	s.publish(ctx, s.event(ctx, events.EntityPerson, events.ActionCreated, p.ID))
	return s.persons.GetByID(ctx, p.ID)
}

func (s *PersonService) Get(ctx context.Context, id uint64) (model.Person, error) {
	return s.persons.GetByID(ctx, id)
}

func (s *PersonService) List(ctx context.Context, f model.PersonFilter) ([]model.Person, int64, error) {
	if err := checkPage(f.Page); err != nil {
		return nil, 0, err
	}
	return s.persons.List(ctx, f)
}

func (s *PersonService) Update(ctx context.Context, id uint64, in model.PersonInput) (model.Person, error) {
	err := repository.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := s.persons.WithTx(tx)
		p, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := applyPerson(&p, in, false); err != nil {
			return err
		}
		if err := repo.Update(ctx, p); err != nil {
			return err
		}
		return replacePersonLinks(ctx, tx, id, in)
	})
	if err != nil {
		return model.Person{}, err
	}
	s.publish(ctx, s.event(ctx, events.EntityPerson, events.ActionUpdated, id))
	return s.persons.GetByID(ctx, id)
}

// Delete fails with repository.ErrConflict while the person directs a movie.
func (s *PersonService) Delete(ctx context.Context, id uint64) error {
	if err := s.persons.Delete(ctx, id); err != nil {
		return err
	}
	s.Log.Info("person deleted", "person_id", id)
	s.publish(ctx, s.event(ctx, events.EntityPerson, events.ActionDeleted, id))
	return nil
}
