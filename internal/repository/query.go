package repository

import (
	"context"
	"strings"

	"github.com/iliyamo/screenscout/internal/model"
)

// likePattern builds a case-insensitive substring pattern for
// "LOWER(col) LIKE ? ESCAPE '!'".
func likePattern(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.ToLower(s)) + "%"
}

func exists(ctx context.Context, q Querier, table string, id uint64) (bool, error) {
	var ok bool
	err := q.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM "+table+" WHERE id = ?)", id).Scan(&ok)
	return ok, err
}

// titleWhere renders the AND-combined movie/series filter.  prefix is the
// join table prefix ("movie" or "series"), alias the aliased main table.
func titleWhere(prefix, alias string, f model.TitleFilter) (string, []any) {
	where := []string{}
	args := []any{}
	if f.Title != "" {
		where = append(where, "LOWER("+alias+".title) LIKE ? ESCAPE '!'")
		args = append(args, likePattern(f.Title))
	}
	if f.ProductionYear != 0 {
		where = append(where, alias+".production_year = ?")
		args = append(args, f.ProductionYear)
	}
	if f.CountryID != 0 {
		where = append(where, "EXISTS (SELECT 1 FROM "+prefix+"_country x WHERE x."+prefix+"_id = "+alias+".id AND x.country_id = ?)")
		args = append(args, f.CountryID)
	}
	if f.GenreID != 0 {
		where = append(where, "EXISTS (SELECT 1 FROM "+prefix+"_genre g WHERE g."+prefix+"_id = "+alias+".id AND g.genre_id = ?)")
		args = append(args, f.GenreID)
	}
	if f.MinRating != nil {
		where = append(where, alias+".rating >= ?")
		args = append(args, *f.MinRating)
	}
	if f.MaxRating != nil {
		where = append(where, alias+".rating <= ?")
		args = append(args, *f.MaxRating)
	}
	if len(where) == 0 {
		return "1=1", args
	}
	return strings.Join(where, " AND "), args
}
