package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The password hash is excluded from the JSON encoding, so any JSON
// round-trip (cache entries, API responses) drops it.
func TestUserDB_JSONDropsPasswordHash(t *testing.T) {
	user := UserDB{
		ID:           uuid.New(),
		Email:        "alice@example.com",
		Username:     "alice",
		PasswordHash: "$2a$10$hash",
	}

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "$2a$10$hash")
	assert.NotContains(t, string(data), "password_hash")

	var got UserDB
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
	assert.Empty(t, got.PasswordHash)
}
