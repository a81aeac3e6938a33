package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/screenscout/internal/model"
)

// PersonRepo manages persons and their career role / genre relations.
type PersonRepo struct {
	db Querier
}

func NewPersonRepo(db Querier) *PersonRepo {
	return &PersonRepo{db: db}
}

func (r *PersonRepo) WithTx(tx *sql.Tx) *PersonRepo {
	return &PersonRepo{db: tx}
}

const personCols = "id, name, height, birthday"

func scanPerson(sc interface{ Scan(...any) error }) (model.Person, error) {
	var (
		p        model.Person
		height   sql.NullInt64
		birthday sql.NullTime
	)
	if err := sc.Scan(&p.ID, &p.Name, &height, &birthday); err != nil {
		return model.Person{}, err
	}
	if height.Valid {
		h := int(height.Int64)
		p.Height = &h
	}
	if birthday.Valid {
		d := model.NewDate(birthday.Time)
		p.Birthday = &d
	}
	return p, nil
}

func birthdayArg(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

// Insert stores the scalar row and sets p.ID.
func (r *PersonRepo) Insert(ctx context.Context, p *model.Person) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO persons (name, height, birthday) VALUES (?, ?, ?)",
		p.Name, p.Height, birthdayArg(p.Birthday))
	if err != nil {
		return mapWriteErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Update overwrites every scalar column of p.
func (r *PersonRepo) Update(ctx context.Context, p model.Person) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE persons SET name = ?, height = ?, birthday = ? WHERE id = ?",
		p.Name, p.Height, birthdayArg(p.Birthday), p.ID)
	return mapWriteErr(err)
}

// GetByID loads the person with both relations.
func (r *PersonRepo) GetByID(ctx context.Context, id uint64) (model.Person, error) {
	p, err := scanPerson(r.db.QueryRowContext(ctx, "SELECT "+personCols+" FROM persons WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Person{}, ErrNotFound
	}
	if err != nil {
		return model.Person{}, err
	}
	people := []model.Person{p}
	if err := r.loadRelations(ctx, people); err != nil {
		return model.Person{}, err
	}
	return people[0], nil
}

// Exists reports whether a person row with id is present.
func (r *PersonRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	return exists(ctx, r.db, "persons", id)
}

// List returns a page of persons ordered by id, optionally filtered by a
// case-insensitive name substring and a career role.
func (r *PersonRepo) List(ctx context.Context, f model.PersonFilter) ([]model.Person, int64, error) {
	where := []string{}
	args := []any{}
	if f.Name != "" {
		where = append(where, "LOWER(p.name) LIKE ? ESCAPE '!'")
		args = append(args, likePattern(f.Name))
	}
	if f.CareerRoleID != 0 {
		where = append(where, "EXISTS (SELECT 1 FROM person_career_role pcr WHERE pcr.person_id = p.id AND pcr.career_role_id = ?)")
		args = append(args, f.CareerRoleID)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM persons p WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT p.id, p.name, p.height, p.birthday FROM persons p WHERE "+cond+" ORDER BY p.id LIMIT ? OFFSET ?",
		append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	out := []model.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			rows.Close()
			return nil, 0, err
		}
		out = append(out, p)
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

// Delete removes the person.  A person still directing a movie cannot be
// removed and yields ErrConflict.
func (r *PersonRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM persons WHERE id = ?", id)
	if err != nil {
		return mapWriteErr(err)
	}
	return affectedOrNotFound(res)
}

func (r *PersonRepo) loadRelations(ctx context.Context, people []model.Person) error {
	ids := make([]uint64, len(people))
	for i, p := range people {
		ids[i] = p.ID
	}
	roles, err := LoadLinksFor(ctx, r.db, PersonRoles, ids)
	if err != nil {
		return err
	}
	genres, err := LoadLinksFor(ctx, r.db, PersonGenres, ids)
	if err != nil {
		return err
	}
	for i := range people {
		people[i].CareerRoles = refsOrEmpty(roles, people[i].ID)
		people[i].Genres = refsOrEmpty(genres, people[i].ID)
	}
	return nil
}
