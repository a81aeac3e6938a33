// Package repository holds the hand-written SQL data access for the catalog,
// the watchlists and the accounts.  The sentinel errors below let higher
// layers such as handlers distinguish failure scenarios without looking at
// driver errors.
package repository

import (
	"errors"

	"github.com/iliyamo/screenscout/internal/database"
)

// ErrNotFound is returned when the requested row does not exist.
// Handlers translate it into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when a unique constraint (reference name,
// username, email, watchlist membership) would be violated.  Handlers
// translate it into an HTTP 409 response.
var ErrAlreadyExists = errors.New("already exists")

// ErrConflict is returned when a delete or update cannot be performed
// because of dependent rows, such as deleting a person who still directs a
// movie.  Handlers translate it into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrInvalidKind is returned for a watchlist kind other than movie/series.
var ErrInvalidKind = errors.New("invalid kind")

// mapWriteErr converts driver constraint errors into sentinels.
func mapWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case database.IsUniqueViolation(err):
		return ErrAlreadyExists
	case database.IsForeignKeyViolation(err):
		return ErrConflict
	}
	return err
}
