package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestNewHS256RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256([]byte("too short"), "tether-social")
	require.Error(t, err)
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256(testSecret(), "tether-social")
	require.NoError(t, err)

	claims := NewSessionClaims("01JUSER", "alice", "tether-social", time.Hour, time.Now())
	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := signer.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "01JUSER", got.Subject)
	require.Equal(t, "alice", got.Username)
	require.NoError(t, got.ValidateExpiry())
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256(testSecret(), "tether-social")
	require.NoError(t, err)
	other, err := NewHS256([]byte("ffffffffffffffffffffffffffffffff"), "tether-social")
	require.NoError(t, err)

	raw, err := signer.Sign(NewSessionClaims("u", "alice", "tether-social", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = other.Verify(raw)
	require.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256(testSecret(), "tether-social")
	require.NoError(t, err)

	claims := NewSessionClaims("u", "alice", "tether-social", time.Minute, time.Now().Add(-time.Hour))
	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = signer.Verify(raw)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256(testSecret(), "tether-social")
	require.NoError(t, err)
	raw, err := signer.Sign(NewSessionClaims("u", "alice", "some-other-service", time.Hour, time.Now()))
	require.NoError(t, err)

	_, err = signer.Verify(raw)
	require.ErrorIs(t, err, ErrBadIssuer)
}
