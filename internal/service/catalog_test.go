package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/repository"
)

func TestSeriesDirectorsAreARelation(t *testing.T) {
	e := newEnv(t)
	a := e.person(t, "A")
	b := e.person(t, "B")
	s := e.series(t, "S")
	svc := NewSeriesService(e.deps)

	got, err := svc.Update(e.ctx, s.ID, model.SeriesInput{DirectorIDs: []uint64{b, 404, a, b}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{a, b}, refIDs(got.Directors))
	assert.Equal(t, 3, got.SeasonsCount)

	_, err = svc.Update(e.ctx, s.ID, model.SeriesInput{SeasonsCount: ptr(0)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSeriesCreateRequiresFields(t *testing.T) {
	e := newEnv(t)
	_, err := NewSeriesService(e.deps).Create(e.ctx, model.SeriesInput{Title: ptr("S")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPersonCreateAndUpdate(t *testing.T) {
	e := newEnv(t)
	actor := e.ref(t, model.CareerRoles, "Actor")
	drama := e.ref(t, model.Genres, "Drama")
	svc := NewPersonService(e.deps)
	bday := model.NewDate(time.Date(1974, 11, 11, 0, 0, 0, 0, time.UTC))

	p, err := svc.Create(e.ctx, model.PersonInput{
		Name:          ptr("Leonardo DiCaprio"),
		Height:        ptr(183),
		Birthday:      &bday,
		CareerRoleIDs: []uint64{actor},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{actor}, refIDs(p.CareerRoles))

	p, err = svc.Update(e.ctx, p.ID, model.PersonInput{GenreIDs: []uint64{drama}})
	require.NoError(t, err)
	assert.Equal(t, "Leonardo DiCaprio", p.Name)
	assert.Equal(t, 183, *p.Height)
	assert.Equal(t, "1974-11-11", p.Birthday.String())
	assert.Equal(t, []uint64{actor}, refIDs(p.CareerRoles))
	assert.Equal(t, []uint64{drama}, refIDs(p.Genres))

	_, err = svc.Create(e.ctx, model.PersonInput{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPersonDeleteWhileDirecting(t *testing.T) {
	e := newEnv(t)
	dir := e.person(t, "Dir")
	e.movie(t, "M", dir)

	err := NewPersonService(e.deps).Delete(e.ctx, dir)
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestListsItemCount(t *testing.T) {
	e := newEnv(t)
	dir := e.person(t, "Dir")
	m1 := e.movie(t, "One", dir)
	m2 := e.movie(t, "Two", dir)
	svc := NewMovieListService(e.deps)

	l, err := svc.Create(e.ctx, model.TitleListInput{Name: ptr("Best"), ItemIDs: []uint64{m1.ID, m2.ID, 77}})
	require.NoError(t, err)
	assert.Equal(t, 2, l.ItemCount)

	l, err = svc.Update(e.ctx, l.ID, model.TitleListInput{Description: ptr("the very best")})
	require.NoError(t, err)
	assert.Equal(t, 2, l.ItemCount)
	assert.Equal(t, "Best", l.Name)

	l, err = svc.Update(e.ctx, l.ID, model.TitleListInput{ItemIDs: []uint64{m2.ID}})
	require.NoError(t, err)
	assert.Equal(t, 1, l.ItemCount)
	assert.Equal(t, "Two", l.Items[0].Title)

	all, total, err := svc.List(e.ctx, model.Page{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, 1, all[0].ItemCount)

	sl, err := NewSeriesListService(e.deps).Create(e.ctx, model.TitleListInput{Name: ptr("Shows")})
	require.NoError(t, err)
	assert.Zero(t, sl.ItemCount)
}
