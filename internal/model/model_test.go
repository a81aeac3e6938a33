package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleOrdering(t *testing.T) {
	assert.True(t, RoleOwner.AtLeast(RoleAdmin))
	assert.True(t, RoleManager.AtLeast(RoleManager))
	assert.False(t, RoleMember.AtLeast(RoleManager))
	assert.False(t, Role("GUEST").AtLeast(RoleMember))

	assert.Equal(t, []Role{RoleOwner, RoleAdmin, RoleManager}, RolesAtLeast(RoleManager))
	assert.Equal(t, []Role{RoleOwner}, RolesAtLeast(RoleOwner))
	assert.Len(t, RolesAtLeast(RoleMember), 4)
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("movies")
	assert.True(t, ok)
	assert.Equal(t, KindMovie, k)

	k, ok = ParseKind("series")
	assert.True(t, ok)
	assert.Equal(t, KindSeries, k)

	_, ok = ParseKind("episode")
	assert.False(t, ok)
}

func TestDateJSON(t *testing.T) {
	var p PersonInput
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Ann","birthday":"1970-03-15"}`), &p))
	require.NotNil(t, p.Birthday)
	assert.Equal(t, time.March, p.Birthday.Month())

	out, err := json.Marshal(Person{Name: "Ann", Birthday: p.Birthday})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"birthday":"1970-03-15"`)

	assert.Error(t, json.Unmarshal([]byte(`{"birthday":"15/03/1970"}`), &p))
}

func TestRefKindValid(t *testing.T) {
	for _, k := range RefKinds {
		assert.True(t, k.Valid())
	}
	assert.False(t, RefKind("users").Valid())
}
