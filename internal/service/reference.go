package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/iliyamo/screenscout/internal/events"
	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/repository"
)

// ReferenceService is the uniqueness-checked CRUD for genres, countries,
// languages and career roles.
type ReferenceService struct {
	Deps
	refs *repository.ReferenceRepo
}

func NewReferenceService(d Deps) *ReferenceService {
	return &ReferenceService{Deps: d, refs: repository.NewReferenceRepo(d.DB)}
}

func refName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name is required")
	}
	if utf8.RuneCountInString(name) > 100 {
		return "", invalid("name is longer than 100 characters")
	}
	return name, nil
}

// Create rejects a name that is already taken.  The lookup gives the
// friendly fast path; the unique index settles concurrent creates.
func (s *ReferenceService) Create(ctx context.Context, kind model.RefKind, name string) (model.Reference, error) {
	name, err := refName(name)
	if err != nil {
		return model.Reference{}, err
	}
	if _, err := s.refs.GetByName(ctx, kind, name); err == nil {
		return model.Reference{}, repository.ErrAlreadyExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.Reference{}, err
	}
	ref, err := s.refs.Create(ctx, kind, name)
	if err != nil {
		return model.Reference{}, err
	}
	s.Log.Info("reference created", "kind", string(kind), "id", ref.ID, "name", ref.Name)
	s.publishRef(ctx, kind, events.ActionCreated, ref.ID)
	return ref, nil
}

func (s *ReferenceService) Get(ctx context.Context, kind model.RefKind, id uint64) (model.Reference, error) {
	return s.refs.GetByID(ctx, kind, id)
}

func (s *ReferenceService) List(ctx context.Context, kind model.RefKind) ([]model.Reference, error) {
	return s.refs.List(ctx, kind)
}

// Update renames id.
func (s *ReferenceService) Update(ctx context.Context, kind model.RefKind, id uint64, name string) (model.Reference, error) {
	name, err := refName(name)
	if err != nil {
		return model.Reference{}, err
	}
	if other, err := s.refs.GetByName(ctx, kind, name); err == nil && other.ID != id {
		return model.Reference{}, repository.ErrAlreadyExists
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return model.Reference{}, err
	}
	if err := s.refs.Rename(ctx, kind, id, name); err != nil {
		return model.Reference{}, err
	}
	s.publishRef(ctx, kind, events.ActionUpdated, id)
	return model.Reference{ID: id, Name: name}, nil
}

func (s *ReferenceService) Delete(ctx context.Context, kind model.RefKind, id uint64) error {
	if err := s.refs.Delete(ctx, kind, id); err != nil {
		return err
	}
	s.Log.Info("reference deleted", "kind", string(kind), "id", id)
	s.publishRef(ctx, kind, events.ActionDeleted, id)
	return nil
}

// EnsureAll creates every missing name and returns how many were added.
// The seeder uses it; existing names are skipped, not reported.
func (s *ReferenceService) EnsureAll(ctx context.Context, kind model.RefKind, names []string) (int, error) {
	added := 0
	for _, n := range names {
		_, err := s.Create(ctx, kind, n)
		switch {
		case err == nil:
			added++
		case errors.Is(err, repository.ErrAlreadyExists):
		default:
			return added, err
		}
	}
	return added, nil
}

func (s *ReferenceService) publishRef(ctx context.Context, kind model.RefKind, action events.Action, id uint64) {
	ev := s.event(ctx, events.EntityReference, action, id)
	ev.Kind = string(kind)
	s.publish(ctx, ev)
}
