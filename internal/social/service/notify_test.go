package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tetherchat/tether/internal/social/domain"
)

type captureMailer struct {
	to   []string
	fail bool
}

func (m *captureMailer) SendMail(_ context.Context, to, _, _ string) error {
	if m.fail {
		return errors.New("smtp down")
	}
	m.to = append(m.to, to)
	return nil
}

func TestDispatchExternal(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	mailer := &captureMailer{}
	env.dispatcher.Mailer = mailer

	t.Run("email intents reach the mailer", func(t *testing.T) {
		res, err := env.dispatcher.Dispatch(ctx, domain.Notification{
			Type:    domain.NotificationInvite,
			Title:   "You're invited",
			Message: "hello",
			Method:  domain.DeliveryEmail,
			Target:  "stranger@example.com",
		})
		require.NoError(t, err)
		require.True(t, res.Sent)
		require.Equal(t, domain.DeliveryEmail, res.Method)
		require.Equal(t, []string{"stranger@example.com"}, mailer.to)
	})

	t.Run("provider failure keeps the record", func(t *testing.T) {
		mailer.fail = true
		res, err := env.dispatcher.Dispatch(ctx, domain.Notification{
			Type:   domain.NotificationInvite,
			Title:  "You're invited",
			Method: domain.DeliveryEmail,
			Target: "other@example.com",
		})
		require.NoError(t, err, "delivery failure must not fail the operation")
		require.False(t, res.Sent)
	})
}

func TestNotificationReadFlow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	// Two notifications for alice via a friend request and its acceptance.
	rel, err := env.friends.SendRequest(ctx, bob.ID, "alice")
	require.NoError(t, err)
	_, err = env.friends.Accept(ctx, alice.ID, rel.ID)
	require.NoError(t, err)

	ns, err := env.dispatcher.List(ctx, alice.ID, 10, true)
	require.NoError(t, err)
	require.Len(t, ns, 1)

	require.NoError(t, env.dispatcher.MarkRead(ctx, alice.ID, []string{ns[0].ID}))
	count, err := env.dispatcher.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	t.Run("delete is owner scoped", func(t *testing.T) {
		err := env.dispatcher.Delete(ctx, bob.ID, ns[0].ID)
		require.ErrorIs(t, err, ErrNotificationNotFound)
		require.NoError(t, env.dispatcher.Delete(ctx, alice.ID, ns[0].ID))
	})

	t.Run("mark all clears the remainder", func(t *testing.T) {
		bn, err := env.dispatcher.List(ctx, bob.ID, 10, true)
		require.NoError(t, err)
		require.NotEmpty(t, bn)

		require.NoError(t, env.dispatcher.MarkAllRead(ctx, bob.ID))
		count, err := env.dispatcher.UnreadCount(ctx, bob.ID)
		require.NoError(t, err)
		require.Zero(t, count)
	})
}

func TestHousekeepingSweep(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	carol := env.register(t, "carol")
	env.register(t, "dave")
	env.register(t, "erin")

	env.invites.TTL = -time.Minute
	inv, err := env.invites.Create(ctx, carol.ID, usernames("dave", "erin"), 0)
	require.NoError(t, err)

	hk := NewHousekeepingService(env.store, slog.Default(), time.Hour, time.Nanosecond)
	hk.Start()
	hk.Stop()

	_, err = env.invites.Status(ctx, inv.Code)
	require.ErrorIs(t, err, ErrInviteNotFound, "expired invite should be gone after the sweep")
}
