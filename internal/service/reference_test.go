package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/repository"
)

func TestReferenceCreateTwice(t *testing.T) {
	e := newEnv(t)
	svc := NewReferenceService(e.deps)

	g, err := svc.Create(e.ctx, model.Genres, " Drama ")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), g.ID)
	assert.Equal(t, "Drama", g.Name)

	_, err = svc.Create(e.ctx, model.Genres, "Drama")
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	got, err := svc.Get(e.ctx, model.Genres, 1)
	require.NoError(t, err)
	assert.Equal(t, "Drama", got.Name)
}

func TestReferenceValidationAndRename(t *testing.T) {
	e := newEnv(t)
	svc := NewReferenceService(e.deps)

	_, err := svc.Create(e.ctx, model.Languages, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	en := e.ref(t, model.Languages, "English")
	e.ref(t, model.Languages, "French")

	_, err = svc.Update(e.ctx, model.Languages, en, "French")
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	got, err := svc.Update(e.ctx, model.Languages, en, "English (UK)")
	require.NoError(t, err)
	assert.Equal(t, "English (UK)", got.Name)

	_, err = svc.Update(e.ctx, model.Languages, 99, "Latin")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, svc.Delete(e.ctx, model.Languages, en))
	assert.ErrorIs(t, svc.Delete(e.ctx, model.Languages, en), repository.ErrNotFound)
}

func TestReferenceEnsureAll(t *testing.T) {
	e := newEnv(t)
	svc := NewReferenceService(e.deps)
	e.ref(t, model.CareerRoles, "Actor")

	added, err := svc.EnsureAll(e.ctx, model.CareerRoles, []string{"Actor", "Director", "Writer"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	list, err := svc.List(e.ctx, model.CareerRoles)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestReferenceNameLengthCountsCharacters(t *testing.T) {
	e := newEnv(t)
	svc := NewReferenceService(e.deps)

	full := strings.Repeat("é", 100)
	g, err := svc.Create(e.ctx, model.Genres, full)
	require.NoError(t, err)
	assert.Equal(t, full, g.Name)

	_, err = svc.Create(e.ctx, model.Genres, full+"é")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Update(e.ctx, model.Genres, g.ID, strings.Repeat("ü", 101))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReferenceUpdateCaseAndLookupErrors(t *testing.T) {
	e := newEnv(t)
	svc := NewReferenceService(e.deps)
	drama := e.ref(t, model.Genres, "drama")
	e.ref(t, model.Genres, "Crime")

	got, err := svc.Update(e.ctx, model.Genres, drama, "Drama")
	require.NoError(t, err)
	assert.Equal(t, "Drama", got.Name)

	_, err = svc.Update(e.ctx, model.Genres, drama, "CRIME")
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
	_, err = svc.Create(e.ctx, model.Genres, "crime")
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)

	ctx, cancel := context.WithCancel(e.ctx)
	cancel()
	_, err = svc.Update(ctx, model.Genres, drama, "Thriller")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, repository.ErrNotFound)

	stored, err := svc.Get(e.ctx, model.Genres, drama)
	require.NoError(t, err)
	assert.Equal(t, "Drama", stored.Name)
	e.pub.AssertNumberOfCalls(t, "Publish", 3)
}
