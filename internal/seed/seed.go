// Package seed loads the built-in reference taxonomy and bootstraps the
// first owner account.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/service"
)

//go:embed reference.yaml
var referenceYAML []byte

// Taxonomy is the shape of reference.yaml.
type Taxonomy struct {
	Genres      []string `yaml:"genres"`
	Countries   []string `yaml:"countries"`
	Languages   []string `yaml:"languages"`
	CareerRoles []string `yaml:"career_roles"`
}

// byKind pairs each list with the table it seeds.
func (t Taxonomy) byKind() map[model.RefKind][]string {
	return map[model.RefKind][]string{
		model.Genres:      t.Genres,
		model.Countries:   t.Countries,
		model.Languages:   t.Languages,
		model.CareerRoles: t.CareerRoles,
	}
}

// Parse decodes a taxonomy document.
func Parse(b []byte) (Taxonomy, error) {
	var t Taxonomy
	if err := yaml.Unmarshal(b, &t); err != nil {
		return Taxonomy{}, fmt.Errorf("parse taxonomy: %w", err)
	}
	return t, nil
}

// Builtin returns the embedded taxonomy.
func Builtin() (Taxonomy, error) { return Parse(referenceYAML) }

// References inserts every missing name of t.  Running it again adds nothing.
func References(ctx context.Context, refs *service.ReferenceService, t Taxonomy, log *slog.Logger) (int, error) {
	total := 0
	for _, kind := range model.RefKinds {
		added, err := refs.EnsureAll(ctx, kind, t.byKind()[kind])
		total += added
		if err != nil {
			return total, fmt.Errorf("seed %s: %w", kind, err)
		}
		if added > 0 {
			log.Info("reference data seeded", "kind", string(kind), "added", added)
		}
	}
	return total, nil
}

// Owner creates the bootstrap owner when no account uses email yet.
func Owner(ctx context.Context, users *service.UserService, username, email, password string, log *slog.Logger) error {
	if email == "" {
		return nil
	}
	created, err := users.EnsureOwner(ctx, username, email, password)
	if err != nil {
		return fmt.Errorf("bootstrap owner (check FIRST_OWNER_USERNAME, FIRST_OWNER_EMAIL, FIRST_OWNER_PASSWORD): %w", err)
	}
	if created {
		log.Info("bootstrap owner created", "email", email)
	}
	return nil
}
