package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndAuthorize(t *testing.T) {
	s := NewTokenService("secret", time.Hour)

	token, err := s.Issue("session-a")
	require.NoError(t, err)

	claims, err := s.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "session-a", claims.SessionID)
	assert.NotNil(t, claims.ExpiresAt)

	assert.NoError(t, s.Authorize(token, "session-a"))
	assert.ErrorIs(t, s.Authorize(token, "session-b"), ErrInvalidToken)
}

func TestTokenService_RejectsForeignAndExpiredTokens(t *testing.T) {
	s := NewTokenService("secret", time.Hour)

	other, err := NewTokenService("other", time.Hour).Issue("session-a")
	require.NoError(t, err)
	_, err = s.Validate(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sessionId": "session-a",
		"exp":       time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = s.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_NoTTL(t *testing.T) {
	s := NewTokenService("secret", 0)
	token, err := s.Issue("session-a")
	require.NoError(t, err)

	claims, err := s.Validate(token)
	require.NoError(t, err)
	assert.Nil(t, claims.ExpiresAt)
}
