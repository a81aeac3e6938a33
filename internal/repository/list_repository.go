package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/screenscout/internal/model"
)

// ListRepo manages curated lists.  The same code serves movie lists and
// series lists; only the tables differ.
type ListRepo struct {
	db      Querier
	table   string    // movie_lists | series_lists
	members LinkTable // MovieListItems | SeriesListItems
}

func NewMovieListRepo(db Querier) *ListRepo {
	return &ListRepo{db: db, table: "movie_lists", members: MovieListItems}
}

func NewSeriesListRepo(db Querier) *ListRepo {
	return &ListRepo{db: db, table: "series_lists", members: SeriesListItems}
}

func (r *ListRepo) WithTx(tx *sql.Tx) *ListRepo {
	return &ListRepo{db: tx, table: r.table, members: r.members}
}

// Members is the relation holding the list items.
func (r *ListRepo) Members() LinkTable { return r.members }

func (r *ListRepo) countExpr() string {
	return "(SELECT COUNT(*) FROM " + r.members.Table + " i WHERE i.list_id = l.id)"
}

func (r *ListRepo) Insert(ctx context.Context, l *model.TitleList) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO "+r.table+" (name, description) VALUES (?, ?)", l.Name, l.Description)
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	l.ID = uint64(id)
	return nil
}

func (r *ListRepo) Update(ctx context.Context, l model.TitleList) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE "+r.table+" SET name = ?, description = ? WHERE id = ?", l.Name, l.Description, l.ID)
	return mapWriteErr(err)
}

// GetByID returns the list with its items and a fresh item_count.
func (r *ListRepo) GetByID(ctx context.Context, id uint64) (model.TitleList, error) {
	var l model.TitleList
	err := r.db.QueryRowContext(ctx,
		"SELECT l.id, l.name, l.description, "+r.countExpr()+" FROM "+r.table+" l WHERE l.id = ?", id).
		Scan(&l.ID, &l.Name, &l.Description, &l.ItemCount)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TitleList{}, ErrNotFound
	}
	if err != nil {
		return model.TitleList{}, err
	}
	refs, err := LoadLinks(ctx, r.db, r.members, id)
	if err != nil {
		return model.TitleList{}, err
	}
	l.Items = make([]model.TitleRef, len(refs))
	for i, ref := range refs {
		l.Items[i] = model.TitleRef{ID: ref.ID, Title: ref.Name}
	}
	return l, nil
}

// List returns a page of lists with item_count but without items.
func (r *ListRepo) List(ctx context.Context, p model.Page) ([]model.TitleList, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+r.table).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT l.id, l.name, l.description, "+r.countExpr()+" FROM "+r.table+" l ORDER BY l.id LIMIT ? OFFSET ?",
		p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []model.TitleList{}
	for rows.Next() {
		var l model.TitleList
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.ItemCount); err != nil {
			return nil, 0, err
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func (r *ListRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM "+r.table+" WHERE id = ?", id)
	if err != nil {
		return mapWriteErr(err)
	}
	return affectedOrNotFound(res)
}
