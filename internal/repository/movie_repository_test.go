package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/screenscout/internal/model"
)

func TestMovieInsertAndGet(t *testing.T) {
	f := newFixture(t)
	dir := f.person(t, "Sergio Leone")
	budget := int64(1_200_000)
	poster := "https://img.example/gbu.jpg"

	m := model.Movie{
		Title:          "The Good, the Bad and the Ugly",
		ProductionYear: 1966,
		DirectorID:     dir,
		Budget:         &budget,
		Rating:         8.8,
		Description:    "Three gunslingers",
		AgeCategory:    "16+",
		Duration:       178,
		PosterURL:      &poster,
	}
	repo := NewMovieRepo(f.db)
	require.NoError(t, repo.Insert(f.ctx, &m))
	require.NotZero(t, m.ID)

	got, err := repo.GetByID(f.ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Title, got.Title)
	assert.Equal(t, "Sergio Leone", got.Director.Name)
	require.NotNil(t, got.Budget)
	assert.Equal(t, budget, *got.Budget)
	assert.Nil(t, got.BoxOffice)
	assert.Nil(t, got.TrailerURL)
	assert.Equal(t, poster, *got.PosterURL)
	assert.InDelta(t, 8.8, got.Rating, 0.001)
	assert.NotNil(t, got.Genres)
	assert.Empty(t, got.Genres)

	_, err = repo.GetByID(f.ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieInsertUnknownDirector(t *testing.T) {
	f := newFixture(t)
	m := model.Movie{Title: "X", ProductionYear: 2000, DirectorID: 999, Description: "d", AgeCategory: "0+", Duration: 1}

	err := NewMovieRepo(f.db).Insert(f.ctx, &m)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestMovieListFilters(t *testing.T) {
	f := newFixture(t)
	dir := f.person(t, "Dir")
	usa := f.ref(t, model.Countries, "USA")
	drama := f.ref(t, model.Genres, "Drama")

	godfather := f.movie(t, "The Godfather", 1972, dir, 9.2)
	f.movie(t, "Godzilla", 1954, dir, 7.5)
	f.movie(t, "Heat", 1995, dir, 8.3)
	_, err := ReplaceLinks(f.ctx, f.db, MovieCountries, godfather, []uint64{usa})
	require.NoError(t, err)
	_, err = ReplaceLinks(f.ctx, f.db, MovieGenres, godfather, []uint64{drama})
	require.NoError(t, err)

	repo := NewMovieRepo(f.db)
	page := model.Page{Limit: 20}

	list, total, err := repo.List(f.ctx, model.TitleFilter{Title: "GOD", Page: page})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, list, 2)

	list, _, err = repo.List(f.ctx, model.TitleFilter{ProductionYear: 1995, Page: page})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Heat", list[0].Title)

	list, _, err = repo.List(f.ctx, model.TitleFilter{CountryID: usa, GenreID: drama, Page: page})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, godfather, list[0].ID)
	assert.Equal(t, "USA", list[0].Countries[0].Name)

	lo, hi := 7.5, 8.3
	list, _, err = repo.List(f.ctx, model.TitleFilter{MinRating: &lo, MaxRating: &hi, Page: page})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	list, _, err = repo.List(f.ctx, model.TitleFilter{Title: "god", ProductionYear: 1954, Page: page})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Godzilla", list[0].Title)
}

func TestMovieListLikeIsEscaped(t *testing.T) {
	f := newFixture(t)
	dir := f.person(t, "Dir")
	f.movie(t, "100% Wolf", 2020, dir, 5)
	f.movie(t, "1000 Wolves", 2020, dir, 5)

	list, _, err := NewMovieRepo(f.db).List(f.ctx, model.TitleFilter{Title: "100%", Page: model.Page{Limit: 10}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "100% Wolf", list[0].Title)
}

func TestMovieListPagination(t *testing.T) {
	f := newFixture(t)
	dir := f.person(t, "Dir")
	for _, title := range []string{"A", "B", "C", "D", "E"} {
		f.movie(t, title, 2000, dir, 5)
	}

	list, total, err := NewMovieRepo(f.db).List(f.ctx, model.TitleFilter{Page: model.Page{Limit: 2, Offset: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, list, 2)
	assert.Equal(t, "C", list[0].Title)
	assert.Equal(t, "D", list[1].Title)
}

func TestMovieDeleteCascades(t *testing.T) {
	f := newFixture(t)
	dir := f.person(t, "Dir")
	movie := f.movie(t, "X", 2000, dir, 5)
	g := f.ref(t, model.Genres, "Drama")
	_, err := ReplaceLinks(f.ctx, f.db, MovieGenres, movie, []uint64{g})
	require.NoError(t, err)

	repo := NewMovieRepo(f.db)
	require.NoError(t, repo.Delete(f.ctx, movie))
	assert.ErrorIs(t, repo.Delete(f.ctx, movie), ErrNotFound)

	var n int
	require.NoError(t, f.db.QueryRow("SELECT COUNT(*) FROM movie_genre").Scan(&n))
	assert.Zero(t, n)
}

func TestPersonDeleteRestrictedByDirectedMovie(t *testing.T) {
	f := newFixture(t)
	dir := f.person(t, "Dir")
	f.movie(t, "X", 2000, dir, 5)

	err := NewPersonRepo(f.db).Delete(f.ctx, dir)
	assert.ErrorIs(t, err, ErrConflict)
}
