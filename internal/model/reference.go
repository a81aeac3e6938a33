package model

// RefKind names one of the reference taxonomies.  Its value is also the
// table name.
type RefKind string

const (
	Genres      RefKind = "genres"
	Countries   RefKind = "countries"
	Languages   RefKind = "languages"
	CareerRoles RefKind = "career_roles"
)

// RefKinds lists every taxonomy in display order.
var RefKinds = []RefKind{Genres, Countries, Languages, CareerRoles}

// Valid reports whether k is a known taxonomy.
func (k RefKind) Valid() bool {
	switch k {
	case Genres, Countries, Languages, CareerRoles:
		return true
	}
	return false
}

// Reference is a row of genres, countries, languages or career_roles.
type Reference struct {
	ID   uint64 `json:"id"`   // <table>.id
	Name string `json:"name"` // <table>.name (unique)
}

// TitleRef is the short form of a movie or series inside a list or a
// watchlist.
type TitleRef struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}
