package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tetherchat/tether/internal/social/contact"
	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/store"
	"github.com/tetherchat/tether/internal/social/store/drivers/sqlite"
	"github.com/tetherchat/tether/pkg/jwtx"
)

// testEnv wires the full service stack against a throwaway sqlite database.
type testEnv struct {
	store      store.Store
	users      *UserService
	friends    *FriendService
	invites    *InviteService
	queries    *QueryService
	verify     *VerificationService
	dispatcher *NotificationDispatcher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "social.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	signer, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "test-issuer")
	require.NoError(t, err)

	resolver := &contact.Resolver{Users: s.Users(), DefaultCountryCode: "+61"}
	dispatcher := &NotificationDispatcher{Store: s}

	return &testEnv{
		store:      s,
		users:      &UserService{Store: s, Resolver: resolver, Signer: signer, Issuer: "test-issuer"},
		friends:    &FriendService{Store: s, Dispatcher: dispatcher},
		invites:    &InviteService{Store: s, Resolver: resolver, Dispatcher: dispatcher},
		queries:    &QueryService{Store: s},
		verify:     &VerificationService{Store: s, Dispatcher: dispatcher, Issuer: "test-issuer"},
		dispatcher: dispatcher,
	}
}

func (e *testEnv) register(t *testing.T, username string) domain.User {
	t.Helper()

	u, err := e.users.Register(context.Background(), RegisterParams{
		Username: username,
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	return u
}

// verifiedEmail attaches and verifies an email for the user.
func (e *testEnv) verifiedEmail(t *testing.T, userID, addr string) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, e.store.Users().UpdateContact(ctx, userID, domain.ChannelEmail, addr))
	require.NoError(t, e.store.Users().MarkContactVerified(ctx, userID, domain.ChannelEmail, time.Now().UTC()))
}
