package model

// Series mirrors the series table.  Unlike a movie a series may have
// several directors, kept in series_director.
type Series struct {
	ID             uint64      `json:"id"`
	Title          string      `json:"title"`
	ProductionYear int         `json:"production_year"`
	SeasonsCount   int         `json:"seasons_count"`
	Rating         float64     `json:"rating"`
	Description    string      `json:"description"`
	AgeCategory    string      `json:"age_category"`
	PosterURL      *string     `json:"poster_url,omitempty"`
	TrailerURL     *string     `json:"trailer_url,omitempty"`
	Directors      []Reference `json:"directors"`
	Countries      []Reference `json:"countries"`
	Genres         []Reference `json:"genres"`
	Languages      []Reference `json:"languages"`
}

type SeriesInput struct {
	Title          *string  `json:"title"`
	ProductionYear *int     `json:"production_year"`
	SeasonsCount   *int     `json:"seasons_count"`
	Rating         *float64 `json:"rating"`
	Description    *string  `json:"description"`
	AgeCategory    *string  `json:"age_category"`
	PosterURL      *string  `json:"poster_url"`
	TrailerURL     *string  `json:"trailer_url"`
	DirectorIDs    []uint64 `json:"director_ids"`
	CountryIDs     []uint64 `json:"country_ids"`
	GenreIDs       []uint64 `json:"genre_ids"`
	LanguageIDs    []uint64 `json:"language_ids"`
}
