// Package events defines the catalog change messages exchanged over the
// message broker, the publisher used by the services and the background
// consumer that audits changes and invalidates cached reads.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Entity names the kind of row an event is about.
type Entity string

const (
	EntityMovie           Entity = "movie"
	EntitySeries          Entity = "series"
	EntityPerson          Entity = "person"
	EntityMovieList       Entity = "movie_list"
	EntitySeriesList      Entity = "series_list"
	EntityReference       Entity = "reference" // Kind carries the taxonomy
	EntityWatchlistMovie  Entity = "watchlist_movie"
	EntityWatchlistSeries Entity = "watchlist_series"
	EntityUser            Entity = "user"
)

// Action is what happened to the entity.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

// CatalogEvent is published after every successful catalog write and
// watchlist change.  It carries enough for consumers to audit and to decide
// on cache invalidation without querying the primary database.
type CatalogEvent struct {
	ID         string    `json:"id"`
	Entity     Entity    `json:"entity"`
	Kind       string    `json:"kind,omitempty"`
	Action     Action    `json:"action"`
	EntityID   uint64    `json:"entity_id"`
	UserID     uint64    `json:"user_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewCatalogEvent stamps an event with a fresh id.
func NewCatalogEvent(entity Entity, action Action, entityID, userID uint64, at time.Time) CatalogEvent {
	return CatalogEvent{
		ID:         uuid.NewString(),
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		UserID:     userID,
		OccurredAt: at.UTC(),
	}
}

// InvalidatesReads reports whether the event changes anything served by the
// public read cache.  Watchlists are per-user and never cached.
func (e CatalogEvent) InvalidatesReads() bool {
	switch e.Entity {
	case EntityWatchlistMovie, EntityWatchlistSeries, EntityUser:
		return false
	}
	return true
}
