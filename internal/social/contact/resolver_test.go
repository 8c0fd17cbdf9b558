package contact

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/store/drivers/sqlite"
	"github.com/tetherchat/tether/pkg/idx"
)

func newResolver(t *testing.T) (*Resolver, *sqlite.Store) {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "social.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	return &Resolver{Users: s.Users(), DefaultCountryCode: "+61"}, s
}

func TestResolve(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r, s := newResolver(t)

	now := time.Now().UTC()
	alice := domain.User{
		ID:           idx.New().String(),
		Username:     "alice",
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(ctx, alice))

	t.Run("username resolves to a registered user", func(t *testing.T) {
		rec, err := r.Resolve(ctx, domain.ChannelUsername, "alice")
		require.NoError(t, err)
		require.Equal(t, domain.ChannelUsername, rec.Channel)
		require.Equal(t, alice.ID, rec.UserID)
	})

	t.Run("unknown username is rejected", func(t *testing.T) {
		_, err := r.Resolve(ctx, domain.ChannelUsername, "nobody")
		require.ErrorIs(t, err, ErrUnknownUser)
	})

	t.Run("email is lowercased and needs no account", func(t *testing.T) {
		rec, err := r.Resolve(ctx, "", "Bob@Example.COM")
		require.NoError(t, err)
		require.Equal(t, domain.ChannelEmail, rec.Channel)
		require.Equal(t, "bob@example.com", rec.Value)
		require.Empty(t, rec.UserID)
	})

	t.Run("national phone gets the default country code", func(t *testing.T) {
		rec, err := r.Resolve(ctx, "", "0400 123 456")
		require.NoError(t, err)
		require.Equal(t, domain.ChannelPhone, rec.Channel)
		require.Equal(t, "+61400123456", rec.Value)
	})

	t.Run("garbage phone is rejected", func(t *testing.T) {
		_, err := r.Resolve(ctx, domain.ChannelPhone, "+123")
		require.ErrorIs(t, err, ErrInvalidPhone)
	})

	t.Run("bare word auto-detects as username", func(t *testing.T) {
		_, err := r.Resolve(ctx, "", "charlie")
		require.ErrorIs(t, err, ErrUnknownUser)
	})
}

func TestNormalizePhone(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"+61 400 123 456", "+61400123456"},
		{"(04) 0012-3456", "+61400123456"},
		{"0400.123.456", "+61400123456"},
		{"+14155552671", "+14155552671"},
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.in, "+61")
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got)
	}

	_, err := NormalizePhone("0400123456", "")
	require.ErrorIs(t, err, ErrInvalidPhone)

	_, err = NormalizePhone("not-a-number", "+61")
	require.ErrorIs(t, err, ErrInvalidPhone)
}

func TestIdentities(t *testing.T) {
	t.Parallel()

	now := time.Now()
	u := domain.User{
		ID:       "u1",
		Username: "dora",
		Email:    "dora@example.com",
		Phone:    "+61400000000",
	}
	require.Equal(t, []string{"dora"}, Identities(u))

	u.EmailVerifiedAt = &now
	require.Equal(t, []string{"dora", "dora@example.com"}, Identities(u))

	u.PhoneVerifiedAt = &now
	require.Equal(t, []string{"dora", "dora@example.com", "+61400000000"}, Identities(u))
}
