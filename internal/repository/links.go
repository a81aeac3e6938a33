package repository

import (
	"context"
	"fmt"

	"github.com/iliyamo/screenscout/internal/model"
)

// LinkTable describes one many-to-many relation: the join table, the column
// pointing at the owner, the column pointing at the target and the target
// column used as a display label.
type LinkTable struct {
	Table       string // join table, e.g. movie_genre
	OwnerCol    string // movie_id
	TargetCol   string // genre_id
	TargetTable string // genres
	LabelCol    string // name
}

// Relations owned by the catalog aggregates.
var (
	MovieGenres     = LinkTable{"movie_genre", "movie_id", "genre_id", "genres", "name"}
	MovieCountries  = LinkTable{"movie_country", "movie_id", "country_id", "countries", "name"}
	MovieLanguages  = LinkTable{"movie_language", "movie_id", "language_id", "languages", "name"}
	SeriesDirectors = LinkTable{"series_director", "series_id", "person_id", "persons", "name"}
	SeriesGenres    = LinkTable{"series_genre", "series_id", "genre_id", "genres", "name"}
	SeriesCountries = LinkTable{"series_country", "series_id", "country_id", "countries", "name"}
	SeriesLanguages = LinkTable{"series_language", "series_id", "language_id", "languages", "name"}
	PersonRoles     = LinkTable{"person_career_role", "person_id", "career_role_id", "career_roles", "name"}
	PersonGenres    = LinkTable{"person_genre", "person_id", "genre_id", "genres", "name"}
	MovieListItems  = LinkTable{"movie_list_movie", "list_id", "movie_id", "movies", "title"}
	SeriesListItems = LinkTable{"series_list_series", "list_id", "series_id", "series", "title"}
)

// linkChunk caps the ids bound into one IN list.  SQLite refuses statements
// with more than 32766 variables.
const linkChunk = 500

// uniqueIDs drops repeats and keeps first positions.
func uniqueIDs(ids []uint64) []uint64 {
	uniq := make([]uint64, 0, len(ids))
	seen := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			uniq = append(uniq, id)
		}
	}
	return uniq
}

// chunkArgs returns the ids of one IN list as query arguments.
func chunkArgs(ids []uint64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// ResolveLinks looks up ids in the target table and returns the rows that
// exist, in input order.  Ids that do not resolve are dropped without an
// error; a repeated id is kept once, at its first position.
func ResolveLinks(ctx context.Context, q Querier, lt LinkTable, ids []uint64) ([]model.Reference, error) {
	out := []model.Reference{}
	if len(ids) == 0 {
		return out, nil
	}
	uniq := uniqueIDs(ids)
	found := make(map[uint64]string, len(uniq))
	for lo := 0; lo < len(uniq); lo += linkChunk {
		part := uniq[lo:min(lo+linkChunk, len(uniq))]
		if err := resolveChunk(ctx, q, lt, part, found); err != nil {
			return nil, err
		}
	}
	for _, id := range uniq {
		if name, ok := found[id]; ok {
			out = append(out, model.Reference{ID: id, Name: name})
		}
	}
	return out, nil
}

func resolveChunk(ctx context.Context, q Querier, lt LinkTable, ids []uint64, found map[uint64]string) error {
	query := fmt.Sprintf("SELECT id, %s FROM %s WHERE id IN (%s)", lt.LabelCol, lt.TargetTable, placeholders(len(ids)))
	rows, err := q.QueryContext(ctx, query, chunkArgs(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var ref model.Reference
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return err
		}
		found[ref.ID] = ref.Name
	}
	return rows.Err()
}

// ReplaceLinks makes the owner's relation equal to the resolved subset of
// ids: current rows are cleared, then every resolved target is inserted.
// Run it inside a transaction so a failure cannot leave the relation
// half-written.
func ReplaceLinks(ctx context.Context, q Querier, lt LinkTable, ownerID uint64, ids []uint64) ([]model.Reference, error) {
	resolved, err := ResolveLinks(ctx, q, lt, ids)
	if err != nil {
		return nil, err
	}
	del := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", lt.Table, lt.OwnerCol)
	if _, err := q.ExecContext(ctx, del, ownerID); err != nil {
		return nil, err
	}
	ins := fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?)", lt.Table, lt.OwnerCol, lt.TargetCol)
	for _, ref := range resolved {
		if _, err := q.ExecContext(ctx, ins, ownerID, ref.ID); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// LoadLinks returns the owner's current targets ordered by target id.
func LoadLinks(ctx context.Context, q Querier, lt LinkTable, ownerID uint64) ([]model.Reference, error) {
	m, err := LoadLinksFor(ctx, q, lt, []uint64{ownerID})
	if err != nil {
		return nil, err
	}
	if refs, ok := m[ownerID]; ok {
		return refs, nil
	}
	return []model.Reference{}, nil
}

// LoadLinksFor eager-loads the relation for several owners, one query per
// linkChunk owners.  Owners without targets are absent from the map.
func LoadLinksFor(ctx context.Context, q Querier, lt LinkTable, ownerIDs []uint64) (map[uint64][]model.Reference, error) {
	out := make(map[uint64][]model.Reference, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	uniq := uniqueIDs(ownerIDs)
	for lo := 0; lo < len(uniq); lo += linkChunk {
		part := uniq[lo:min(lo+linkChunk, len(uniq))]
		if err := loadChunk(ctx, q, lt, part, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func loadChunk(ctx context.Context, q Querier, lt LinkTable, ownerIDs []uint64, out map[uint64][]model.Reference) error {
	query := fmt.Sprintf(`SELECT j.%[1]s, t.id, t.%[2]s
		FROM %[3]s j
		JOIN %[4]s t ON t.id = j.%[5]s
		WHERE j.%[1]s IN (%[6]s)
		ORDER BY j.%[1]s, t.id`,
		lt.OwnerCol, lt.LabelCol, lt.Table, lt.TargetTable, lt.TargetCol, placeholders(len(ownerIDs)))
	rows, err := q.QueryContext(ctx, query, chunkArgs(ownerIDs)...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var owner uint64
		var ref model.Reference
		if err := rows.Scan(&owner, &ref.ID, &ref.Name); err != nil {
			return err
		}
		out[owner] = append(out[owner], ref)
	}
	return rows.Err()
}

// refsOrEmpty keeps JSON output as [] rather than null.
func refsOrEmpty(m map[uint64][]model.Reference, id uint64) []model.Reference {
	if refs, ok := m[id]; ok {
		return refs
	}
	return []model.Reference{}
}
