package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/screenscout/internal/database/dbtest"
	"github.com/iliyamo/screenscout/internal/model"
)

type fixture struct {
	ctx  context.Context
	db   *sql.DB
	refs *ReferenceRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)
	return &fixture{ctx: context.Background(), db: db, refs: NewReferenceRepo(db)}
}

func (f *fixture) ref(t *testing.T, kind model.RefKind, name string) uint64 {
	t.Helper()
	ref, err := f.refs.Create(f.ctx, kind, name)
	require.NoError(t, err)
	return ref.ID
}

func (f *fixture) person(t *testing.T, name string) uint64 {
	t.Helper()
	p := model.Person{Name: name}
	require.NoError(t, NewPersonRepo(f.db).Insert(f.ctx, &p))
	return p.ID
}

func (f *fixture) movie(t *testing.T, title string, year int, directorID uint64, rating float64) uint64 {
	t.Helper()
	m := model.Movie{
		Title:          title,
		ProductionYear: year,
		DirectorID:     directorID,
		Rating:         rating,
		Description:    title + " description",
		AgeCategory:    "16+",
		Duration:       120,
	}
	require.NoError(t, NewMovieRepo(f.db).Insert(f.ctx, &m))
	return m.ID
}

func (f *fixture) series(t *testing.T, title string) uint64 {
	t.Helper()
	s := model.Series{Title: title, ProductionYear: 2020, SeasonsCount: 2, Rating: 8, Description: "d", AgeCategory: "12+"}
	require.NoError(t, NewSeriesRepo(f.db).Insert(f.ctx, &s))
	return s.ID
}

func ids(refs []model.Reference) []uint64 {
	out := make([]uint64, len(refs))
	for i, r := range refs {
		out[i] = r.ID
	}
	return out
}
