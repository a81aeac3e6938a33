package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/screenscout/internal/model"
)

// MovieRepo manages movies and their country, genre and language relations.
type MovieRepo struct {
	db Querier
}

func NewMovieRepo(db Querier) *MovieRepo {
	return &MovieRepo{db: db}
}

func (r *MovieRepo) WithTx(tx *sql.Tx) *MovieRepo {
	return &MovieRepo{db: tx}
}

const movieSelect = `SELECT m.id, m.title, m.production_year, m.director_id, p.name,
		m.budget, m.box_office, m.rating, m.description, m.age_category, m.duration,
		m.poster_url, m.trailer_url
	FROM movies m
	JOIN persons p ON p.id = m.director_id`

func scanMovie(sc interface{ Scan(...any) error }) (model.Movie, error) {
	var (
		m                 model.Movie
		director          string
		budget, boxOffice sql.NullInt64
		poster, trailer   sql.NullString
	)
	err := sc.Scan(&m.ID, &m.Title, &m.ProductionYear, &m.DirectorID, &director,
		&budget, &boxOffice, &m.Rating, &m.Description, &m.AgeCategory, &m.Duration,
		&poster, &trailer)
	if err != nil {
		return model.Movie{}, err
	}
	m.Director = &model.Reference{ID: m.DirectorID, Name: director}
	m.Budget = nullInt64(budget)
	m.BoxOffice = nullInt64(boxOffice)
	m.PosterURL = nullString(poster)
	m.TrailerURL = nullString(trailer)
	return m, nil
}

// Insert stores the scalar row and sets m.ID.  A director id that does not
// exist fails the foreign key and yields ErrConflict.
func (r *MovieRepo) Insert(ctx context.Context, m *model.Movie) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO movies (title, production_year, director_id, budget, box_office, rating,
			description, age_category, duration, poster_url, trailer_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Title, m.ProductionYear, m.DirectorID, m.Budget, m.BoxOffice, m.Rating,
		m.Description, m.AgeCategory, m.Duration, m.PosterURL, m.TrailerURL)
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Update overwrites every scalar column of m.
func (r *MovieRepo) Update(ctx context.Context, m model.Movie) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE movies SET title = ?, production_year = ?, director_id = ?, budget = ?, box_office = ?,
			rating = ?, description = ?, age_category = ?, duration = ?, poster_url = ?, trailer_url = ?
		WHERE id = ?`,
		m.Title, m.ProductionYear, m.DirectorID, m.Budget, m.BoxOffice,
		m.Rating, m.Description, m.AgeCategory, m.Duration, m.PosterURL, m.TrailerURL,
		m.ID)
	return mapWriteErr(err)
}

// GetByID eager-loads every relation of the movie.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, movieSelect+" WHERE m.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, ErrNotFound
	}
	if err != nil {
		return model.Movie{}, err
	}
	movies := []model.Movie{m}
	if err := r.loadRelations(ctx, movies); err != nil {
		return model.Movie{}, err
	}
	return movies[0], nil
}

func (r *MovieRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	return exists(ctx, r.db, "movies", id)
}

// List returns one page of movies matching f, ordered by id, and the
// number of matches across all pages.
func (r *MovieRepo) List(ctx context.Context, f model.TitleFilter) ([]model.Movie, int64, error) {
	cond, args := titleWhere("movie", "m", f)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies m WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		movieSelect+" WHERE "+cond+" ORDER BY m.id LIMIT ? OFFSET ?",
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	out := []model.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			rows.Close()
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, 0, err
	}
	rows.Close()

	if err := r.loadRelations(ctx, out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Delete removes the movie; join, list and watchlist rows cascade.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return mapWriteErr(err)
	}
	return affectedOrNotFound(res)
}

func (r *MovieRepo) loadRelations(ctx context.Context, movies []model.Movie) error {
	ids := make([]uint64, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	countries, err := LoadLinksFor(ctx, r.db, MovieCountries, ids)
	if err != nil {
		return err
	}
	genres, err := LoadLinksFor(ctx, r.db, MovieGenres, ids)
	if err != nil {
		return err
	}
	languages, err := LoadLinksFor(ctx, r.db, MovieLanguages, ids)
	if err != nil {
		return err
	}
	for i := range movies {
		id := movies[i].ID
		movies[i].Countries = refsOrEmpty(countries, id)
		movies[i].Genres = refsOrEmpty(genres, id)
		movies[i].Languages = refsOrEmpty(languages, id)
	}
	return nil
}

func nullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
