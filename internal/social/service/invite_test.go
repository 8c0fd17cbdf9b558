package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tetherchat/tether/internal/social/domain"
)

func usernames(a, b string) [2]RecipientInput {
	return [2]RecipientInput{
		{Channel: domain.ChannelUsername, Value: a},
		{Channel: domain.ChannelUsername, Value: b},
	}
}

func TestInviteLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	carol := env.register(t, "carol")
	dave := env.register(t, "dave")
	erin := env.register(t, "erin")

	inv, err := env.invites.Create(ctx, carol.ID, usernames("dave", "erin"), 0)
	require.NoError(t, err)
	require.NotEmpty(t, inv.Code)
	require.Equal(t, dave.ID, inv.Slots[0].UserID)
	require.Equal(t, erin.ID, inv.Slots[1].UserID)

	t.Run("both recipients are notified", func(t *testing.T) {
		for _, uid := range []string{dave.ID, erin.ID} {
			count, err := env.dispatcher.UnreadCount(ctx, uid)
			require.NoError(t, err)
			require.Equal(t, 1, count)
		}
	})

	t.Run("status starts unaccepted", func(t *testing.T) {
		st, err := env.invites.Status(ctx, inv.Code)
		require.NoError(t, err)
		require.Equal(t, [2]bool{false, false}, st.Accepted)
		require.False(t, st.Resolved)
		require.False(t, st.IsExpired)
	})

	t.Run("wrong user cannot claim a slot", func(t *testing.T) {
		_, _, err := env.invites.Accept(ctx, erin.ID, inv.Code, 1)
		require.ErrorIs(t, err, ErrSlotMismatch)
	})

	t.Run("first acceptance does not resolve", func(t *testing.T) {
		got, thread, err := env.invites.Accept(ctx, dave.ID, inv.Code, 1)
		require.NoError(t, err)
		require.Nil(t, thread)
		require.True(t, got.Slots[0].Accepted())
		require.False(t, got.Resolved())
	})

	t.Run("double acceptance of a slot fails", func(t *testing.T) {
		_, _, err := env.invites.Accept(ctx, dave.ID, inv.Code, 1)
		require.ErrorIs(t, err, ErrAlreadyAccepted)
	})

	t.Run("second acceptance resolves into a thread", func(t *testing.T) {
		got, thread, err := env.invites.Accept(ctx, erin.ID, inv.Code, 2)
		require.NoError(t, err)
		require.NotNil(t, thread)
		require.Equal(t, thread.ID, got.ThreadID)
		require.ElementsMatch(t, []string{dave.ID, erin.ID}, thread.Participants)
		require.Equal(t, carol.ID, thread.CreatedBy)
		require.NotContains(t, thread.Participants, carol.ID)

		stored, err := env.store.Threads().GetThreadByID(ctx, thread.ID)
		require.NoError(t, err)
		require.Len(t, stored.Participants, 2)
	})

	t.Run("resolution is terminal", func(t *testing.T) {
		st, err := env.invites.Status(ctx, inv.Code)
		require.NoError(t, err)
		require.True(t, st.Resolved)
		require.NotEmpty(t, st.ThreadID)

		_, _, err = env.invites.Accept(ctx, dave.ID, inv.Code, 1)
		require.ErrorIs(t, err, ErrInviteResolved)
	})

	t.Run("exactly the two recipients hear about resolution", func(t *testing.T) {
		for _, uid := range []string{dave.ID, erin.ID} {
			ns, err := env.dispatcher.List(ctx, uid, 10, false)
			require.NoError(t, err)
			require.Equal(t, domain.NotificationInviteResolved, ns[0].Type)
		}

		ns, err := env.dispatcher.List(ctx, carol.ID, 10, false)
		require.NoError(t, err)
		require.Empty(t, ns)
	})
}

func TestInviteCreateValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	carol := env.register(t, "carol")
	dave := env.register(t, "dave")
	env.register(t, "erin")

	t.Run("unknown username recipient", func(t *testing.T) {
		_, err := env.invites.Create(ctx, carol.ID, usernames("dave", "ghost"), 0)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("identical recipients", func(t *testing.T) {
		_, err := env.invites.Create(ctx, carol.ID, usernames("dave", "dave"), 0)
		require.ErrorIs(t, err, ErrSameRecipient)
	})

	t.Run("username and own email collide", func(t *testing.T) {
		env.verifiedEmail(t, dave.ID, "dave@example.com")

		_, err := env.invites.Create(ctx, carol.ID, [2]RecipientInput{
			{Channel: domain.ChannelUsername, Value: "dave"},
			{Channel: domain.ChannelEmail, Value: "Dave@Example.com"},
		}, 0)
		require.ErrorIs(t, err, ErrSameRecipient)
	})

	t.Run("malformed recipient", func(t *testing.T) {
		_, err := env.invites.Create(ctx, carol.ID, [2]RecipientInput{
			{Channel: domain.ChannelUsername, Value: "dave"},
			{Channel: domain.ChannelPhone, Value: "not a number"},
		}, 0)
		require.ErrorIs(t, err, ErrInvalidRecipient)
	})
}

func TestInviteEmailSlot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	carol := env.register(t, "carol")
	env.register(t, "dave")
	erin := env.register(t, "erin")

	inv, err := env.invites.Create(ctx, carol.ID, [2]RecipientInput{
		{Channel: domain.ChannelUsername, Value: "dave"},
		{Channel: domain.ChannelEmail, Value: "erin@example.com"},
	}, 0)
	require.NoError(t, err)

	t.Run("no matching contact", func(t *testing.T) {
		_, _, err := env.invites.Accept(ctx, erin.ID, inv.Code, 2)
		require.ErrorIs(t, err, ErrSlotMismatch)
	})

	t.Run("unverified contact is not enough", func(t *testing.T) {
		require.NoError(t, env.store.Users().UpdateContact(ctx, erin.ID, domain.ChannelEmail, "erin@example.com"))

		_, _, err := env.invites.Accept(ctx, erin.ID, inv.Code, 2)
		require.ErrorIs(t, err, ErrContactNotVerified)
	})

	t.Run("verified contact claims the slot", func(t *testing.T) {
		require.NoError(t, env.store.Users().MarkContactVerified(ctx, erin.ID, domain.ChannelEmail, time.Now().UTC()))

		got, _, err := env.invites.Accept(ctx, erin.ID, inv.Code, 2)
		require.NoError(t, err)
		require.Equal(t, erin.ID, got.Slots[1].UserID)
	})
}

func TestInviteExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	carol := env.register(t, "carol")
	dave := env.register(t, "dave")
	env.register(t, "erin")

	// A negative TTL backdates the deadline, so the invite is born expired.
	env.invites.TTL = -time.Minute

	inv, err := env.invites.Create(ctx, carol.ID, usernames("dave", "erin"), 0)
	require.NoError(t, err)

	_, _, err = env.invites.Accept(ctx, dave.ID, inv.Code, 1)
	require.ErrorIs(t, err, ErrInviteExpired)

	// Status still answers for expired invites; only Accept and Resend gate.
	st, err := env.invites.Status(ctx, inv.Code)
	require.NoError(t, err)
	require.True(t, st.IsExpired)
	require.False(t, st.Resolved)

	open, err := env.invites.ListOpen(ctx, dave.ID)
	require.NoError(t, err)
	require.Empty(t, open)
}

func TestInviteResend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	carol := env.register(t, "carol")
	dave := env.register(t, "dave")
	env.register(t, "erin")

	inv, err := env.invites.Create(ctx, carol.ID, usernames("dave", "erin"), 0)
	require.NoError(t, err)

	t.Run("creator only", func(t *testing.T) {
		err := env.invites.Resend(ctx, dave.ID, inv.Code, 1)
		require.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("redelivers until the burst is spent", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, env.invites.Resend(ctx, carol.ID, inv.Code, 1))
		}
		err := env.invites.Resend(ctx, carol.ID, inv.Code, 1)
		require.ErrorIs(t, err, ErrResendThrottled)

		// The other slot has its own budget.
		require.NoError(t, env.invites.Resend(ctx, carol.ID, inv.Code, 2))
	})

	t.Run("accepted slots cannot be resent", func(t *testing.T) {
		_, _, err := env.invites.Accept(ctx, dave.ID, inv.Code, 1)
		require.NoError(t, err)

		err = env.invites.Resend(ctx, carol.ID, inv.Code, 2)
		require.NoError(t, err)
		err = env.invites.Resend(ctx, carol.ID, inv.Code, 1)
		require.ErrorIs(t, err, ErrAlreadyAccepted)
	})
}

func TestInviteListOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	carol := env.register(t, "carol")
	dave := env.register(t, "dave")
	erin := env.register(t, "erin")

	inv, err := env.invites.Create(ctx, carol.ID, usernames("dave", "erin"), 0)
	require.NoError(t, err)

	for _, uid := range []string{carol.ID, dave.ID, erin.ID} {
		open, err := env.invites.ListOpen(ctx, uid)
		require.NoError(t, err)
		require.Len(t, open, 1)
		require.Equal(t, inv.Code, open[0].Code)
	}

	// Email-addressed invites surface only once the contact is verified.
	_, err = env.invites.Create(ctx, carol.ID, [2]RecipientInput{
		{Channel: domain.ChannelUsername, Value: "dave"},
		{Channel: domain.ChannelEmail, Value: "frank@example.com"},
	}, 0)
	require.NoError(t, err)

	frank := env.register(t, "frank")
	open, err := env.invites.ListOpen(ctx, frank.ID)
	require.NoError(t, err)
	require.Empty(t, open)

	env.verifiedEmail(t, frank.ID, "frank@example.com")
	open, err = env.invites.ListOpen(ctx, frank.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
}

func TestConcurrentDualAccept(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	carol := env.register(t, "carol")
	dave := env.register(t, "dave")
	erin := env.register(t, "erin")

	inv, err := env.invites.Create(ctx, carol.ID, usernames("dave", "erin"), 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	threads := make([]*domain.Thread, 2)
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, threads[0], errs[0] = env.invites.Accept(ctx, dave.ID, inv.Code, 1)
	}()
	go func() {
		defer wg.Done()
		_, threads[1], errs[1] = env.invites.Accept(ctx, erin.ID, inv.Code, 2)
	}()
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	var created int
	for _, th := range threads {
		if th != nil {
			created++
		}
	}
	require.Equal(t, 1, created, "exactly one acceptance must create the thread")

	st, err := env.invites.Status(ctx, inv.Code)
	require.NoError(t, err)
	require.True(t, st.Resolved)
}
