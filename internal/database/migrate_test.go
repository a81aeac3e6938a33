package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrationsBothDialects(t *testing.T) {
	for _, driver := range []string{"mysql", "sqlite3"} {
		migrations, err := LoadMigrations(driver)
		require.NoError(t, err, driver)
		require.NotEmpty(t, migrations, driver)
		assert.Equal(t, 1, migrations[0].Version)
		assert.Equal(t, "init", migrations[0].Name)
	}

	_, err := LoadMigrations("postgres")
	assert.Error(t, err)
}

func TestSplitStatements(t *testing.T) {
	script := "-- header\nCREATE TABLE a (id INT);\n\n-- next\nCREATE TABLE b (id INT);\n"
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE TABLE b (id INT)"}, splitStatements(script))
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(ctx, db, "sqlite3", nil))
	require.NoError(t, Migrate(ctx, db, "sqlite3", nil))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestDriverErrorClassification(t *testing.T) {
	ctx := context.Background()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, Migrate(ctx, db, "sqlite3", nil))

	_, err = db.ExecContext(ctx, "INSERT INTO genres (name) VALUES ('Drama')")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO genres (name) VALUES ('Drama')")
	assert.True(t, IsUniqueViolation(err))
	assert.False(t, IsForeignKeyViolation(err))

	_, err = db.ExecContext(ctx, "INSERT INTO movie_genre (movie_id, genre_id) VALUES (42, 1)")
	assert.True(t, IsForeignKeyViolation(err))
	assert.False(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(nil))
}
