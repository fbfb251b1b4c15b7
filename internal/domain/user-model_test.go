package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("Moderator")
	assert.True(t, ok)
	assert.Equal(t, RoleModerator, role)

	_, ok = ParseRole("moderator")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestUserPasswordNeverSerialized(t *testing.T) {
	user := User{
		Name:     "Hidden Hash",
		Email:    "hash@example.com",
		Password: "$2a$10$somebcrypthash",
		Role:     RoleStudent,
	}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.NotContains(t, string(raw), "somebcrypthash")
	_, present := out["password"]
	assert.False(t, present)
	assert.Equal(t, "hash@example.com", out["email"])
}
