package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	tokenStr, err := maker.GenerateToken("+79990001122", "session-uid")
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	claims, err := maker.ParseToken(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "+79990001122", claims.Phone)
	assert.Equal(t, "session-uid", claims.SessionUID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestMaker_ParseToken_Errors(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewMaker("other-secret", time.Hour)
		tokenStr, err := other.GenerateToken("+79990001122", "session-uid")
		require.NoError(t, err)

		_, err = maker.ParseToken(tokenStr)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewMaker("test-secret", -time.Minute)
		tokenStr, err := expired.GenerateToken("+79990001122", "session-uid")
		require.NoError(t, err)

		_, err = maker.ParseToken(tokenStr)
		assert.Error(t, err)
	})

	t.Run("garbage string", func(t *testing.T) {
		_, err := maker.ParseToken("not-a-jwt")
		assert.Error(t, err)
	})
}
