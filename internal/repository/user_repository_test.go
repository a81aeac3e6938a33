package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/screenscout/internal/model"
	"github.com/iliyamo/screenscout/internal/utils"
)

func TestUserCreateAndLookup(t *testing.T) {
	f := newFixture(t)
	repo := NewUserRepo(f.db)

	id, err := repo.Create(f.ctx, " dana ", " Dana@Example.COM ", "pa55word!", model.RoleMember, 4)
	require.NoError(t, err)

	u, err := repo.GetByEmail(f.ctx, "dana@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)
	assert.Equal(t, "dana", u.Username)
	assert.Equal(t, model.RoleMember, u.Role)
	assert.True(t, u.IsActive)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "pa55word!"))

	_, err = repo.GetByUsername(f.ctx, "dana")
	require.NoError(t, err)

	_, err = repo.Create(f.ctx, "other", "dana@example.com", "x", model.RoleMember, 4)
	assert.ErrorIs(t, err, ErrAlreadyExists)
	_, err = repo.Create(f.ctx, "dana", "other@example.com", "x", model.RoleMember, 4)
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = repo.GetByID(f.ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRoleAndActive(t *testing.T) {
	f := newFixture(t)
	repo := NewUserRepo(f.db)
	id := f.user(t, "eve")

	require.NoError(t, repo.SetRole(f.ctx, id, model.RoleManager))
	require.NoError(t, repo.SetActive(f.ctx, id, false))
	assert.ErrorIs(t, repo.SetActive(f.ctx, 999, true), ErrNotFound)

	u, err := repo.GetByID(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.RoleManager, u.Role)
	assert.False(t, u.IsActive)

	users, err := repo.List(f.ctx, model.Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRefreshTokenLifecycle(t *testing.T) {
	f := newFixture(t)
	uid := f.user(t, "fay")
	tokens := NewTokenRepo(f.db)

	require.NoError(t, tokens.StoreRefresh(f.ctx, uid, "hash-a", time.Now().Add(time.Hour)))
	require.NoError(t, tokens.StoreRefresh(f.ctx, uid, "hash-b", time.Now().Add(time.Hour)))
	require.NoError(t, tokens.StoreRefresh(f.ctx, uid, "hash-old", time.Now().Add(-time.Hour)))

	got, err := tokens.ValidateRefresh(f.ctx, "hash-a")
	require.NoError(t, err)
	assert.Equal(t, uid, got)

	_, err = tokens.ValidateRefresh(f.ctx, "hash-old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = tokens.ValidateRefresh(f.ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, tokens.RevokeByHash(f.ctx, "hash-a"))
	_, err = tokens.ValidateRefresh(f.ctx, "hash-a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, tokens.RevokeAllForUser(f.ctx, uid))
	_, err = tokens.ValidateRefresh(f.ctx, "hash-b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	f := newFixture(t)

	err := WithTx(f.ctx, f.db, func(tx *sql.Tx) error {
		if _, err := NewReferenceRepo(tx).Create(f.ctx, model.Genres, "Drama"); err != nil {
			return err
		}
		return ErrConflict
	})
	assert.ErrorIs(t, err, ErrConflict)

	list, err := f.refs.List(f.ctx, model.Genres)
	require.NoError(t, err)
	assert.Empty(t, list)
}
