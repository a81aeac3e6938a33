package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/repository"
)

func (e *env) user(t *testing.T, name string) uint64 {
	t.Helper()
	id, err := repository.NewUserRepo(e.deps.DB).Create(e.ctx, name, name+"@example.com", "password1", model.RoleMember, 4)
	require.NoError(t, err)
	return id
}

func TestWatchlistAddTwice(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "ann")
	m := e.movie(t, "M", e.person(t, "Dir"))
	svc := NewWatchlistService(e.deps)

	require.NoError(t, svc.AddMovie(e.ctx, u, m.ID))
	assert.ErrorIs(t, svc.AddMovie(e.ctx, u, m.ID), repository.ErrAlreadyExists)

	feed, err := svc.List(e.ctx, u)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestWatchlistAddUnknownItem(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "ann")
	svc := NewWatchlistService(e.deps)

	assert.ErrorIs(t, svc.AddMovie(e.ctx, u, 5), repository.ErrNotFound)
	assert.ErrorIs(t, svc.AddSeries(e.ctx, u, 5), repository.ErrNotFound)
	assert.ErrorIs(t, svc.Add(e.ctx, model.Kind("book"), u, 5), repository.ErrInvalidKind)
}

func TestWatchlistMergedFeedOrderedByAddedAt(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "bob")
	dir := e.person(t, "Dir")
	m1 := e.movie(t, "Movie One", dir)
	m2 := e.movie(t, "Movie Two", dir)
	s1 := e.series(t, "Series One")
	svc := NewWatchlistService(e.deps)

	// the clock ticks one second per call: series first, then movies
	require.NoError(t, svc.AddSeries(e.ctx, u, s1.ID))
	require.NoError(t, svc.AddMovie(e.ctx, u, m2.ID))
	require.NoError(t, svc.AddMovie(e.ctx, u, m1.ID))

	feed, err := svc.List(e.ctx, u)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, model.KindSeries, feed[0].Kind)
	assert.Equal(t, "Series One", feed[0].Title)
	assert.Equal(t, "Movie Two", feed[1].Title)
	assert.Equal(t, "Movie One", feed[2].Title)
	for i := 1; i < len(feed); i++ {
		assert.False(t, feed[i].AddedAt.Before(feed[i-1].AddedAt))
	}
}

func TestWatchlistRemove(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "cid")
	m := e.movie(t, "M", e.person(t, "Dir"))
	svc := NewWatchlistService(e.deps)

	require.NoError(t, svc.AddMovie(e.ctx, u, m.ID))
	require.NoError(t, svc.Remove(e.ctx, u, m.ID, "movie"))

	feed, err := svc.List(e.ctx, u)
	require.NoError(t, err)
	assert.Empty(t, feed)

	assert.ErrorIs(t, svc.Remove(e.ctx, u, m.ID, "movie"), repository.ErrNotFound)
	assert.ErrorIs(t, svc.Remove(e.ctx, u, m.ID, "podcast"), repository.ErrInvalidKind)
}

func TestWatchlistIsPerUser(t *testing.T) {
	e := newEnv(t)
	a := e.user(t, "ann")
	b := e.user(t, "bob")
	s := e.series(t, "S")
	svc := NewWatchlistService(e.deps)

	require.NoError(t, svc.AddSeries(e.ctx, a, s.ID))
	require.NoError(t, svc.AddSeries(e.ctx, b, s.ID))
	require.NoError(t, svc.Remove(e.ctx, a, s.ID, "series"))

	feed, err := svc.List(e.ctx, b)
	require.NoError(t, err)
	assert.Len(t, feed, 1)
}

func TestWatchlistFollowsItemDeletion(t *testing.T) {
	e := newEnv(t)
	u := e.user(t, "dee")
	m := e.movie(t, "M", e.person(t, "Dir"))
	svc := NewWatchlistService(e.deps)
	require.NoError(t, svc.AddMovie(e.ctx, u, m.ID))

	require.NoError(t, NewMovieService(e.deps).Delete(e.ctx, m.ID))

	feed, err := svc.List(e.ctx, u)
	require.NoError(t, err)
	assert.Empty(t, feed)
}
