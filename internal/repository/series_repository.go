package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/screenscout/internal/model"
)

// SeriesRepo manages series together with their directors, countries,
// genres and languages.
type SeriesRepo struct {
	db Querier
}

func NewSeriesRepo(db Querier) *SeriesRepo {
	return &SeriesRepo{db: db}
}

func (r *SeriesRepo) WithTx(tx *sql.Tx) *SeriesRepo {
	return &SeriesRepo{db: tx}
}

const seriesSelect = `SELECT s.id, s.title, s.production_year, s.seasons_count, s.rating,
		s.description, s.age_category, s.poster_url, s.trailer_url
	FROM series s`

func scanSeries(sc interface{ Scan(...any) error }) (model.Series, error) {
	var (
		s               model.Series
		poster, trailer sql.NullString
	)
	err := sc.Scan(&s.ID, &s.Title, &s.ProductionYear, &s.SeasonsCount, &s.Rating,
		&s.Description, &s.AgeCategory, &poster, &trailer)
	if err != nil {
		return model.Series{}, err
	}
	s.PosterURL = nullString(poster)
	s.TrailerURL = nullString(trailer)
	return s, nil
}

func (r *SeriesRepo) Insert(ctx context.Context, s *model.Series) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO series (title, production_year, seasons_count, rating, description,
			age_category, poster_url, trailer_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Title, s.ProductionYear, s.SeasonsCount, s.Rating, s.Description,
		s.AgeCategory, s.PosterURL, s.TrailerURL)
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

func (r *SeriesRepo) Update(ctx context.Context, s model.Series) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE series SET title = ?, production_year = ?, seasons_count = ?, rating = ?,
			description = ?, age_category = ?, poster_url = ?, trailer_url = ?
		WHERE id = ?`,
		s.Title, s.ProductionYear, s.SeasonsCount, s.Rating,
		s.Description, s.AgeCategory, s.PosterURL, s.TrailerURL,
		s.ID)
	return mapWriteErr(err)
}

func (r *SeriesRepo) GetByID(ctx context.Context, id uint64) (model.Series, error) {
	s, err := scanSeries(r.db.QueryRowContext(ctx, seriesSelect+" WHERE s.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Series{}, ErrNotFound
	}
	if err != nil {
		return model.Series{}, err
	}
	list := []model.Series{s}
	if err := r.loadRelations(ctx, list); err != nil {
		return model.Series{}, err
	}
	return list[0], nil
}

func (r *SeriesRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	return exists(ctx, r.db, "series", id)
}

// List mirrors MovieRepo.List.
func (r *SeriesRepo) List(ctx context.Context, f model.TitleFilter) ([]model.Series, int64, error) {
	cond, args := titleWhere("series", "s", f)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM series s WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		seriesSelect+" WHERE "+cond+" ORDER BY s.id LIMIT ? OFFSET ?",
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	out := []model.Series{}
	for rows.Next() {
		s, err := scanSeries(rows)
		if err != nil {
			rows.Close()
			return nil, 0, err
		}
		out = append(out, s)
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

func (r *SeriesRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM series WHERE id = ?", id)
	if err != nil {
		return mapWriteErr(err)
	}
	return affectedOrNotFound(res)
}

func (r *SeriesRepo) loadRelations(ctx context.Context, list []model.Series) error {
	ids := make([]uint64, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	rels := []LinkTable{SeriesDirectors, SeriesCountries, SeriesGenres, SeriesLanguages}
	loaded := make([]map[uint64][]model.Reference, len(rels))
	for i, lt := range rels {
		m, err := LoadLinksFor(ctx, r.db, lt, ids)
		if err != nil {
			return err
		}
		loaded[i] = m
	}
	for i := range list {
		id := list[i].ID
		list[i].Directors = refsOrEmpty(loaded[0], id)
		list[i].Countries = refsOrEmpty(loaded[1], id)
		list[i].Genres = refsOrEmpty(loaded[2], id)
		list[i].Languages = refsOrEmpty(loaded[3], id)
	}
	return nil
}
