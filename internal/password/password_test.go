package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("pw123")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "pw123", hash)

	assert.True(t, Verify("pw123", hash))
	assert.False(t, Verify("pw124", hash))
}

func TestHash_SaltedPerCall(t *testing.T) {
	h1, err := Hash("pw123")
	assert.NoError(t, err)
	h2, err := Hash("pw123")
	assert.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, Verify("pw123", h1))
	assert.True(t, Verify("pw123", h2))
}

func TestVerify_MalformedHash(t *testing.T) {
	assert.False(t, Verify("pw123", ""))
	assert.False(t, Verify("pw123", "not-a-bcrypt-hash"))
}
