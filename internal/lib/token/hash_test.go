package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := GetHash("refresh-secret-value")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "refresh-secret-value", hash)

	assert.NoError(t, CompareHash(hash, "refresh-secret-value"))
	assert.Error(t, CompareHash(hash, "wrong-value"))
	assert.Error(t, CompareHash("not-a-bcrypt-hash", "refresh-secret-value"))
}
