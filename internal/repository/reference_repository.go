package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/screenscout/internal/model"
)

// ReferenceRepo manages the four reference taxonomies.  They share one
// shape, so the table is chosen by model.RefKind.
type ReferenceRepo struct {
	db Querier
}

func NewReferenceRepo(db Querier) *ReferenceRepo {
	return &ReferenceRepo{db: db}
}

// WithTx returns a copy of the repository bound to tx.
func (r *ReferenceRepo) WithTx(tx *sql.Tx) *ReferenceRepo {
	return &ReferenceRepo{db: tx}
}

func table(kind model.RefKind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown reference kind %q", kind)
	}
	return string(kind), nil
}

// Create inserts name and returns the new row.  A duplicate name yields
// ErrAlreadyExists.
func (r *ReferenceRepo) Create(ctx context.Context, kind model.RefKind, name string) (model.Reference, error) {
	t, err := table(kind)
	if err != nil {
		return model.Reference{}, err
	}
	res, err := r.db.ExecContext(ctx, "INSERT INTO "+t+" (name) VALUES (?)", name)
	if err != nil {
		return model.Reference{}, mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Reference{}, err
	}
	return model.Reference{ID: uint64(id), Name: name}, nil
}

// GetByID returns ErrNotFound when the row is missing.
func (r *ReferenceRepo) GetByID(ctx context.Context, kind model.RefKind, id uint64) (model.Reference, error) {
	t, err := table(kind)
	if err != nil {
		return model.Reference{}, err
	}
	var ref model.Reference
	err = r.db.QueryRowContext(ctx, "SELECT id, name FROM "+t+" WHERE id = ?", id).Scan(&ref.ID, &ref.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reference{}, ErrNotFound
	}
	return ref, err
}

// GetByName matches case-insensitively, as the unique index does.
func (r *ReferenceRepo) GetByName(ctx context.Context, kind model.RefKind, name string) (model.Reference, error) {
	t, err := table(kind)
	if err != nil {
		return model.Reference{}, err
	}
	var ref model.Reference
	err = r.db.QueryRowContext(ctx, "SELECT id, name FROM "+t+" WHERE name = ?", name).Scan(&ref.ID, &ref.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reference{}, ErrNotFound
	}
	return ref, err
}

// List returns every row ordered by id.
func (r *ReferenceRepo) List(ctx context.Context, kind model.RefKind) ([]model.Reference, error) {
	t, err := table(kind)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, "SELECT id, name FROM "+t+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Reference{}
	for rows.Next() {
		var ref model.Reference
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

// Rename changes the name of id.  ErrNotFound if the row is missing,
// ErrAlreadyExists if another row carries the name.
func (r *ReferenceRepo) Rename(ctx context.Context, kind model.RefKind, id uint64, name string) error {
	t, err := table(kind)
	if err != nil {
		return err
	}
	if _, err := r.GetByID(ctx, kind, id); err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, "UPDATE "+t+" SET name = ? WHERE id = ?", name, id)
	return mapWriteErr(err)
}

// Delete removes id; join rows pointing at it go with it through ON DELETE
// CASCADE.
func (r *ReferenceRepo) Delete(ctx context.Context, kind model.RefKind, id uint64) error {
	t, err := table(kind)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM "+t+" WHERE id = ?", id)
	if err != nil {
		return mapWriteErr(err)
	}
	return affectedOrNotFound(res)
}
