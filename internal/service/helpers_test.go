package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/screenscout/internal/database/dbtest"
	"github.com/iliyamo/screenscout/internal/events"
	"github.com/iliyamo/screenscout/internal/model"
)

type publisherMock struct{ mock.Mock }

func (m *publisherMock) Publish(ctx context.Context, ev events.CatalogEvent) error {
	return m.Called(ctx, ev).Error(0)
}

// clock hands out strictly increasing instants.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type env struct {
	ctx  context.Context
	deps Deps
	pub  *publisherMock
	clk  *clock
}

func newEnv(t *testing.T) *env {
	t.Helper()
	pub := &publisherMock{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	clk := &clock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	return &env{
		ctx: WithActor(context.Background(), 1),
		deps: Deps{
			DB:        dbtest.New(t),
			Publisher: pub,
			Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
			Now:       clk.Now,
		},
		pub: pub,
		clk: clk,
	}
}

func (e *env) ref(t *testing.T, kind model.RefKind, name string) uint64 {
	t.Helper()
	r, err := NewReferenceService(e.deps).Create(e.ctx, kind, name)
	require.NoError(t, err)
	return r.ID
}

func (e *env) person(t *testing.T, name string) uint64 {
	t.Helper()
	p, err := NewPersonService(e.deps).Create(e.ctx, model.PersonInput{Name: &name})
	require.NoError(t, err)
	return p.ID
}

func (e *env) movie(t *testing.T, title string, directorID uint64) model.Movie {
	t.Helper()
	m, err := NewMovieService(e.deps).Create(e.ctx, movieInput(title, directorID))
	require.NoError(t, err)
	return m
}

func (e *env) series(t *testing.T, title string) model.Series {
	t.Helper()
	s, err := NewSeriesService(e.deps).Create(e.ctx, model.SeriesInput{
		Title:          &title,
		ProductionYear: ptr(2010),
		Rating:         ptr(8.0),
		SeasonsCount:   ptr(3),
		Description:    ptr("d"),
		AgeCategory:    ptr("16+"),
	})
	require.NoError(t, err)
	return s
}

func movieInput(title string, directorID uint64) model.MovieInput {
	return model.MovieInput{
		Title:          &title,
		ProductionYear: ptr(1999),
		DirectorID:     &directorID,
		Rating:         ptr(7.25),
		Description:    ptr("A film."),
		AgeCategory:    ptr("18+"),
		Duration:       ptr(136),
	}
}

func ptr[T any](v T) *T { return &v }

func refIDs(refs []model.Reference) []uint64 {
	out := make([]uint64, len(refs))
	for i, r := range refs {
		out[i] = r.ID
	}
	return out
}
