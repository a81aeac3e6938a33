package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/screenscout/internal/model"
)

// WatchlistRepo manages the two per-user association tables.  Each pair
// (user, item) appears at most once, enforced by the composite primary key.
type WatchlistRepo struct {
	db Querier
}

func NewWatchlistRepo(db Querier) *WatchlistRepo {
	return &WatchlistRepo{db: db}
}

func (r *WatchlistRepo) WithTx(tx *sql.Tx) *WatchlistRepo {
	return &WatchlistRepo{db: tx}
}

type watchTable struct {
	table     string // user_watchlist_movies
	itemCol   string // movie_id
	itemTable string // movies
}

func watchTableFor(kind model.Kind) (watchTable, error) {
	switch kind {
	case model.KindMovie:
		return watchTable{"user_watchlist_movies", "movie_id", "movies"}, nil
	case model.KindSeries:
		return watchTable{"user_watchlist_series", "series_id", "series"}, nil
	}
	return watchTable{}, ErrInvalidKind
}

// Contains reports whether itemID is on the user's watchlist.
func (r *WatchlistRepo) Contains(ctx context.Context, kind model.Kind, userID, itemID uint64) (bool, error) {
	wt, err := watchTableFor(kind)
	if err != nil {
		return false, err
	}
	var ok bool
	err = r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM "+wt.table+" WHERE user_id = ? AND "+wt.itemCol+" = ?)",
		userID, itemID).Scan(&ok)
	return ok, err
}

// Add inserts the membership row.  A second add of the same item yields
// ErrAlreadyExists from the primary key.
func (r *WatchlistRepo) Add(ctx context.Context, kind model.Kind, userID, itemID uint64, at time.Time) error {
	wt, err := watchTableFor(kind)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"INSERT INTO "+wt.table+" (user_id, "+wt.itemCol+", added_at) VALUES (?, ?, ?)",
		userID, itemID, at.UTC())
	return mapWriteErr(err)
}

// Remove deletes the membership row or returns ErrNotFound.
func (r *WatchlistRepo) Remove(ctx context.Context, kind model.Kind, userID, itemID uint64) error {
	wt, err := watchTableFor(kind)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM "+wt.table+" WHERE user_id = ? AND "+wt.itemCol+" = ?", userID, itemID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Entries returns the user's entries of one kind joined with the item title,
// oldest first.
func (r *WatchlistRepo) Entries(ctx context.Context, kind model.Kind, userID uint64) ([]model.WatchlistEntry, error) {
	wt, err := watchTableFor(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT w.`+wt.itemCol+`, t.title, w.added_at
		FROM `+wt.table+` w
		JOIN `+wt.itemTable+` t ON t.id = w.`+wt.itemCol+`
		WHERE w.user_id = ?
		ORDER BY w.added_at, w.`+wt.itemCol, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.WatchlistEntry{}
	for rows.Next() {
		e := model.WatchlistEntry{Kind: kind}
		if err := rows.Scan(&e.ItemID, &e.Title, &e.AddedAt); err != nil {
			return nil, err
		}
		e.AddedAt = e.AddedAt.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
