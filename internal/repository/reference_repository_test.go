package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/screenscout/internal/model"
)

func TestReferenceCreateDuplicate(t *testing.T) {
	f := newFixture(t)

	first, err := f.refs.Create(f.ctx, model.Genres, "Drama")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.ID)

	_, err = f.refs.Create(f.ctx, model.Genres, "Drama")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	got, err := f.refs.GetByID(f.ctx, model.Genres, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drama", got.Name)

	// the same name in another taxonomy is fine
	_, err = f.refs.Create(f.ctx, model.CareerRoles, "Drama")
	assert.NoError(t, err)
}

func TestReferenceNamesIgnoreCase(t *testing.T) {
	f := newFixture(t)
	id := f.ref(t, model.Genres, "Drama")

	_, err := f.refs.Create(f.ctx, model.Genres, "drama")
	assert.ErrorIs(t, err, ErrAlreadyExists)
	_, err = f.refs.Create(f.ctx, model.Genres, "DRAMA")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	got, err := f.refs.GetByName(f.ctx, model.Genres, "dRaMa")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Drama", got.Name)
}

func TestReferenceRenameAndDelete(t *testing.T) {
	f := newFixture(t)
	a := f.ref(t, model.Countries, "Germany")
	f.ref(t, model.Countries, "Spain")

	require.NoError(t, f.refs.Rename(f.ctx, model.Countries, a, "Austria"))
	require.NoError(t, f.refs.Rename(f.ctx, model.Countries, a, "Austria"))
	assert.ErrorIs(t, f.refs.Rename(f.ctx, model.Countries, a, "Spain"), ErrAlreadyExists)
	assert.ErrorIs(t, f.refs.Rename(f.ctx, model.Countries, 99, "Peru"), ErrNotFound)

	list, err := f.refs.List(f.ctx, model.Countries)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Austria", list[0].Name)

	require.NoError(t, f.refs.Delete(f.ctx, model.Countries, a))
	assert.ErrorIs(t, f.refs.Delete(f.ctx, model.Countries, a), ErrNotFound)
	_, err = f.refs.GetByID(f.ctx, model.Countries, a)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReferenceDeleteCascadesToLinks(t *testing.T) {
	f := newFixture(t)
	g := f.ref(t, model.Genres, "Horror")
	movie := f.movie(t, "It", 2017, f.person(t, "Andy"), 7.3)
	_, err := ReplaceLinks(f.ctx, f.db, MovieGenres, movie, []uint64{g})
	require.NoError(t, err)

	require.NoError(t, f.refs.Delete(f.ctx, model.Genres, g))

	got, err := LoadLinks(f.ctx, f.db, MovieGenres, movie)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReferenceUnknownKind(t *testing.T) {
	f := newFixture(t)
	_, err := f.refs.List(f.ctx, model.RefKind("users"))
	assert.Error(t, err)
}
