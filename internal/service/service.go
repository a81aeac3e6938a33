// Package service composes the repositories into the catalog operations:
// transactional create/update of aggregates, the watchlist feed and the
// account flows.  Every successful write publishes a catalog event.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/iliyamo/screenscout/internal/events"
)

// ErrValidation marks input the caller must fix.  It is always wrapped with
// the offending field, e.g. "validation failed: title is required".
var ErrValidation = errors.New("validation failed")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

type actorKey struct{}

// WithActor records the authenticated user on ctx so events can name who
// made a change.
func WithActor(ctx context.Context, userID uint64) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

// ActorFrom returns the user recorded by WithActor, or 0.
func ActorFrom(ctx context.Context) uint64 {
	id, _ := ctx.Value(actorKey{}).(uint64)
	return id
}

// Deps are shared by every service.
type Deps struct {
	DB        *sql.DB
	Publisher events.Publisher
	Log       *slog.Logger
	Now       func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}

// publish sends an event and only logs a failure; the write already
// committed.
func (d Deps) publish(ctx context.Context, ev events.CatalogEvent) {
	if d.Publisher == nil {
		return
	}
	if err := d.Publisher.Publish(ctx, ev); err != nil {
		d.Log.Warn("publish catalog event failed",
			"entity", string(ev.Entity), "action", string(ev.Action), "entity_id", ev.EntityID, "err", err)
	}
}

func (d Deps) event(ctx context.Context, entity events.Entity, action events.Action, id uint64) events.CatalogEvent {
	return events.NewCatalogEvent(entity, action, id, ActorFrom(ctx), d.now())
}

// field helpers used by the aggregate validators

func requiredText(name string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", invalid("%s is required", name)
	}
	return strings.TrimSpace(*v), nil
}

func optionalText(name string, v *string, cur string) (string, error) {
	if v == nil {
		return cur, nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return "", invalid("%s must not be empty", name)
	}
	return s, nil
}

// optionalURL trims and keeps nil; an empty string stays unset.
func optionalURL(v *string, cur *string) *string {
	if v == nil {
		return cur
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return cur
	}
	return &s
}

const (
	minYear = 1870
	maxYear = 2100
)

func checkYear(y int) error {
	if y < minYear || y > maxYear {
		return invalid("production_year must be between %d and %d", minYear, maxYear)
	}
	return nil
}

// normRating checks the 0.0-10.0 range and rounds to one decimal.
func normRating(r float64) (float64, error) {
	if math.IsNaN(r) || r < 0 || r > 10 {
		return 0, invalid("rating must be between 0.0 and 10.0")
	}
	return math.Round(r*10) / 10, nil
}

func checkPositive(name string, v int) error {
	if v <= 0 {
		return invalid("%s must be positive", name)
	}
	return nil
}

func checkNonNegative(name string, v *int64) error {
	if v != nil && *v < 0 {
		return invalid("%s must not be negative", name)
	}
	return nil
}
