package model

import "time"

// Kind tags a watchlist entry as a movie or a series.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// ParseKind accepts "movie"/"movies" and "series".
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "movie", "movies":
		return KindMovie, true
	case "series":
		return KindSeries, true
	}
	return "", false
}

// WatchlistEntry is one row of the merged watchlist feed.
type WatchlistEntry struct {
	Kind    Kind      `json:"kind"`
	ItemID  uint64    `json:"item_id"`
	Title   string    `json:"title"`
	AddedAt time.Time `json:"added_at"`
}
