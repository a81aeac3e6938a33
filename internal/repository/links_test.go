package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/screenscout/internal/model"
)

func TestResolveLinksDropsUnknownAndKeepsOrder(t *testing.T) {
	f := newFixture(t)
	drama := f.ref(t, model.Genres, "Drama")
	crime := f.ref(t, model.Genres, "Crime")
	war := f.ref(t, model.Genres, "War")

	got, err := ResolveLinks(f.ctx, f.db, MovieGenres, []uint64{war, 9999, drama, crime, 4242})
	require.NoError(t, err)
	assert.Equal(t, []uint64{war, drama, crime}, ids(got))
	assert.Equal(t, "War", got[0].Name)
}

func TestResolveLinksDeduplicates(t *testing.T) {
	f := newFixture(t)
	a := f.ref(t, model.Countries, "France")
	b := f.ref(t, model.Countries, "Italy")

	got, err := ResolveLinks(f.ctx, f.db, MovieCountries, []uint64{b, a, b, a})
	require.NoError(t, err)
	assert.Equal(t, []uint64{b, a}, ids(got))
}

func TestResolveLinksEmpty(t *testing.T) {
	f := newFixture(t)

	got, err := ResolveLinks(f.ctx, f.db, MovieGenres, nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReplaceLinksIsIdempotent(t *testing.T) {
	f := newFixture(t)
	g1 := f.ref(t, model.Genres, "Drama")
	g2 := f.ref(t, model.Genres, "Comedy")
	movie := f.movie(t, "X", 2001, f.person(t, "Dir"), 7)

	for i := 0; i < 2; i++ {
		_, err := ReplaceLinks(f.ctx, f.db, MovieGenres, movie, []uint64{g1, g2, 9999})
		require.NoError(t, err)
	}

	got, err := LoadLinks(f.ctx, f.db, MovieGenres, movie)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{g1, g2}, ids(got))
}

func TestReplaceLinksReplacesAndClears(t *testing.T) {
	f := newFixture(t)
	g1 := f.ref(t, model.Genres, "Drama")
	g2 := f.ref(t, model.Genres, "Comedy")
	movie := f.movie(t, "X", 2001, f.person(t, "Dir"), 7)

	_, err := ReplaceLinks(f.ctx, f.db, MovieGenres, movie, []uint64{g1})
	require.NoError(t, err)
	_, err = ReplaceLinks(f.ctx, f.db, MovieGenres, movie, []uint64{g2})
	require.NoError(t, err)

	got, err := LoadLinks(f.ctx, f.db, MovieGenres, movie)
	require.NoError(t, err)
	assert.Equal(t, []uint64{g2}, ids(got))

	_, err = ReplaceLinks(f.ctx, f.db, MovieGenres, movie, []uint64{})
	require.NoError(t, err)
	got, err = LoadLinks(f.ctx, f.db, MovieGenres, movie)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadLinksForSeveralOwners(t *testing.T) {
	f := newFixture(t)
	dir := f.person(t, "Dir")
	m1 := f.movie(t, "A", 2000, dir, 5)
	m2 := f.movie(t, "B", 2000, dir, 5)
	m3 := f.movie(t, "C", 2000, dir, 5)
	lang := f.ref(t, model.Languages, "English")

	_, err := ReplaceLinks(f.ctx, f.db, MovieLanguages, m1, []uint64{lang})
	require.NoError(t, err)
	_, err = ReplaceLinks(f.ctx, f.db, MovieLanguages, m2, []uint64{lang})
	require.NoError(t, err)

	got, err := LoadLinksFor(f.ctx, f.db, MovieLanguages, []uint64{m1, m2, m3})
	require.NoError(t, err)
	assert.Len(t, got[m1], 1)
	assert.Len(t, got[m2], 1)
	assert.NotContains(t, got, m3)
}

func TestResolveLinksBeyondOneStatement(t *testing.T) {
	f := newFixture(t)
	drama := f.ref(t, model.Genres, "Drama")
	crime := f.ref(t, model.Genres, "Crime")

	in := []uint64{crime}
	for i := uint64(0); i < 40000; i++ {
		in = append(in, 100000+i)
	}
	in = append(in, drama, crime)

	got, err := ResolveLinks(f.ctx, f.db, MovieGenres, in)
	require.NoError(t, err)
	assert.Equal(t, []uint64{crime, drama}, ids(got))

	movie := f.movie(t, "X", 2001, f.person(t, "Dir"), 7)
	_, err = ReplaceLinks(f.ctx, f.db, MovieGenres, movie, in)
	require.NoError(t, err)

	owners := make([]uint64, 0, 3*linkChunk)
	for i := uint64(0); i < 3*linkChunk; i++ {
		owners = append(owners, 100000+i)
	}
	owners = append(owners, movie)
	loaded, err := LoadLinksFor(f.ctx, f.db, MovieGenres, owners)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, []uint64{drama, crime}, ids(loaded[movie]))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?,?,?", placeholders(3))
}
