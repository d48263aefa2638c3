package auth_test

import (
	"testing"
	"time"

	"pathbridge-backend/pkg/auth"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.SignToken(testSecret, "user1", "u@example.edu", time.Hour)
	assert.NoError(t, err)

	claims, err := auth.ParseToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, "u@example.edu", claims.Email)
}

func TestParseTokenRejections(t *testing.T) {
	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		token, _ := auth.SignToken("other-secret", "user1", "", time.Hour)
		_, err := auth.ParseToken(testSecret, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		token, _ := auth.SignToken(testSecret, "user1", "", -time.Minute)
		_, err := auth.ParseToken(testSecret, token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := auth.ParseToken(testSecret, "not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
