package model

// Page is an offset/limit window.  Limit must be positive.
type Page struct {
	Limit  int
	Offset int
}

// DefaultLimit applies when the caller does not send ?limit.  MaxLimit bounds
// a single page.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// TitleFilter narrows a movie or series listing.  Zero values mean
// "no filter"; set filters are AND-combined.
type TitleFilter struct {
	Title          string   // case-insensitive substring
	ProductionYear int      // exact
	CountryID      uint64   // membership
	GenreID        uint64   // membership
	MinRating      *float64 // inclusive
	MaxRating      *float64 // inclusive
	Page
}
