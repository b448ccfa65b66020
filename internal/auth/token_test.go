package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenService_RoundTrip(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService("super-secret", time.Hour)
	require.NoError(t, err)

	tok, err := svc.Issue("user-123", "alice@example.com", "member")
	require.NoError(t, err)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "member", claims.Role)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
}

func TestTokenService_Expired(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService("secret", -time.Second)
	require.NoError(t, err)

	tok, err := svc.Issue("u1", "a@b.com", "member")
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer, err := NewTokenService("right-secret", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenService("wrong-secret", time.Hour)
	require.NoError(t, err)

	tok, err := issuer.Issue("u2", "b@c.com", "admin")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenService_GarbledInput(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService("k", time.Hour)
	require.NoError(t, err)

	for _, tok := range []string{"", "not.a.jwt", "a.b", "…"} {
		_, err := svc.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenService("", time.Hour)
	require.Error(t, err)
}

func TestNewTokenService_DefaultTTL(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService("secret", 0)
	require.NoError(t, err)

	tok, err := svc.Issue("u3", "c@d.com", "member")
	require.NoError(t, err)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	require.WithinDuration(t,
		time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}
