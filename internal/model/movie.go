package model

// Movie mirrors the movies table plus its director and the country, genre
// and language relations.
type Movie struct {
	ID             uint64      `json:"id"`
	Title          string      `json:"title"`
	ProductionYear int         `json:"production_year"`
	DirectorID     uint64      `json:"director_id"`
	Director       *Reference  `json:"director,omitempty"`
	Budget         *int64      `json:"budget,omitempty"`
	BoxOffice      *int64      `json:"box_office,omitempty"`
	Rating         float64     `json:"rating"`
	Description    string      `json:"description"`
	AgeCategory    string      `json:"age_category"`
	Duration       int         `json:"duration"` // minutes
	PosterURL      *string     `json:"poster_url,omitempty"`
	TrailerURL     *string     `json:"trailer_url,omitempty"`
	Countries      []Reference `json:"countries"`
	Genres         []Reference `json:"genres"`
	Languages      []Reference `json:"languages"`
}

// MovieInput carries a create or partial update, see PersonInput for the
// nil semantics.
type MovieInput struct {
	Title          *string  `json:"title"`
	ProductionYear *int     `json:"production_year"`
	DirectorID     *uint64  `json:"director_id"`
	Budget         *int64   `json:"budget"`
	BoxOffice      *int64   `json:"box_office"`
	Rating         *float64 `json:"rating"`
	Description    *string  `json:"description"`
	AgeCategory    *string  `json:"age_category"`
	Duration       *int     `json:"duration"`
	PosterURL      *string  `json:"poster_url"`
	TrailerURL     *string  `json:"trailer_url"`
	CountryIDs     []uint64 `json:"country_ids"`
	GenreIDs       []uint64 `json:"genre_ids"`
	LanguageIDs    []uint64 `json:"language_ids"`
}
