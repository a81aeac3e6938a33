package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/screenscout/internal/model"
)

func (f *fixture) user(t *testing.T, username string) uint64 {
	t.Helper()
	id, err := NewUserRepo(f.db).Create(f.ctx, username, username+"@example.com", "secret-pass", model.RoleMember, 4)
	require.NoError(t, err)
	return id
}

func TestWatchlistAddContainsRemove(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "ann")
	movie := f.movie(t, "Alien", 1979, f.person(t, "Ridley Scott"), 8.5)
	repo := NewWatchlistRepo(f.db)

	require.NoError(t, repo.Add(f.ctx, model.KindMovie, u, movie, time.Now()))
	ok, err := repo.Contains(f.ctx, model.KindMovie, u, movie)
	require.NoError(t, err)
	assert.True(t, ok)

	err = repo.Add(f.ctx, model.KindMovie, u, movie, time.Now())
	assert.ErrorIs(t, err, ErrAlreadyExists)

	entries, err := repo.Entries(f.ctx, model.KindMovie, u)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Alien", entries[0].Title)
	assert.Equal(t, model.KindMovie, entries[0].Kind)

	require.NoError(t, repo.Remove(f.ctx, model.KindMovie, u, movie))
	assert.ErrorIs(t, repo.Remove(f.ctx, model.KindMovie, u, movie), ErrNotFound)
}

func TestWatchlistKindsAreIndependent(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "bob")
	movie := f.movie(t, "M", 2000, f.person(t, "Dir"), 5)
	series := f.series(t, "S")
	repo := NewWatchlistRepo(f.db)

	// ids collide on purpose: movie 1 and series 1
	require.Equal(t, movie, series)
	require.NoError(t, repo.Add(f.ctx, model.KindMovie, u, movie, time.Now()))
	require.NoError(t, repo.Add(f.ctx, model.KindSeries, u, series, time.Now()))

	require.NoError(t, repo.Remove(f.ctx, model.KindSeries, u, series))
	ok, err := repo.Contains(f.ctx, model.KindMovie, u, movie)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWatchlistInvalidKind(t *testing.T) {
	f := newFixture(t)
	repo := NewWatchlistRepo(f.db)

	assert.ErrorIs(t, repo.Add(f.ctx, model.Kind("episode"), 1, 1, time.Now()), ErrInvalidKind)
	assert.ErrorIs(t, repo.Remove(f.ctx, model.Kind("episode"), 1, 1), ErrInvalidKind)
}

func TestWatchlistEntriesOrderedByAddedAt(t *testing.T) {
	f := newFixture(t)
	u := f.user(t, "cid")
	dir := f.person(t, "Dir")
	first := f.movie(t, "First", 2000, dir, 5)
	second := f.movie(t, "Second", 2000, dir, 5)
	repo := NewWatchlistRepo(f.db)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Add(f.ctx, model.KindMovie, u, second, base.Add(time.Hour)))
	require.NoError(t, repo.Add(f.ctx, model.KindMovie, u, first, base))

	entries, err := repo.Entries(f.ctx, model.KindMovie, u)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "First", entries[0].Title)
	assert.True(t, entries[0].AddedAt.Equal(base))
}
