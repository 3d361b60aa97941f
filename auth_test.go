package tradebridge

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantfold/trade-bridge/mock"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "ada@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(10 * time.Minute).Truncate(time.Second)
	got, err := tokenExpiry(signedToken(t, exp))
	require.NoError(t, err)
	assert.True(t, got.Equal(exp))

	_, err = tokenExpiry("not-a-jwt")
	require.Error(t, err)
}

func TestRefreshCapturesSessionExpiry(t *testing.T) {
	srv := mock.NewServer()
	defer srv.Close()
	exp := time.Now().Add(10 * time.Minute).Truncate(time.Second)
	srv.AccessToken = signedToken(t, exp)

	c := newTestClient(t, srv.URL(), Config{})
	assert.True(t, c.SessionExpiresAt().IsZero())

	require.NoError(t, c.RefreshSession(context.Background()))
	assert.True(t, c.SessionExpiresAt().Equal(exp))
	assert.True(t, c.SessionExpiringWithin(time.Hour))
	assert.False(t, c.SessionExpiringWithin(time.Minute))
}

func TestSessionExpiringWithinUnknownSession(t *testing.T) {
	c := newTestClient(t, "https://trade.example.com", Config{})
	assert.False(t, c.SessionExpiringWithin(time.Hour))
}
