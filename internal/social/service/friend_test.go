package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetherchat/tether/internal/social/domain"
)

func TestFriendLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	rel, err := env.friends.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)
	require.Equal(t, alice.ID, rel.RequesterID)

	t.Run("status reflects direction and carries the request id", func(t *testing.T) {
		st, requestID, err := env.friends.Status(ctx, alice.ID, "bob")
		require.NoError(t, err)
		require.Equal(t, domain.StatusPendingSent, st)
		require.Equal(t, rel.ID, requestID)

		st, requestID, err = env.friends.Status(ctx, bob.ID, "alice")
		require.NoError(t, err)
		require.Equal(t, domain.StatusPendingReceived, st)
		require.Equal(t, rel.ID, requestID)
	})

	t.Run("recipient is notified", func(t *testing.T) {
		count, err := env.dispatcher.UnreadCount(ctx, bob.ID)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("resend is idempotent", func(t *testing.T) {
		again, err := env.friends.SendRequest(ctx, alice.ID, "bob")
		require.NoError(t, err)
		require.Equal(t, rel.ID, again.ID)

		// No second notification either.
		count, err := env.dispatcher.UnreadCount(ctx, bob.ID)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("reverse request is reported as duplicate", func(t *testing.T) {
		_, err := env.friends.SendRequest(ctx, bob.ID, "alice")
		require.ErrorIs(t, err, ErrDuplicateRequest)
	})

	t.Run("only the recipient may accept", func(t *testing.T) {
		_, err := env.friends.Accept(ctx, alice.ID, rel.ID)
		require.ErrorIs(t, err, ErrNotAuthorized)
	})

	t.Run("accept makes friends and notifies the requester", func(t *testing.T) {
		accepted, err := env.friends.Accept(ctx, bob.ID, rel.ID)
		require.NoError(t, err)
		require.True(t, accepted.Friends)

		st, requestID, err := env.friends.Status(ctx, alice.ID, "bob")
		require.NoError(t, err)
		require.Equal(t, domain.StatusFriends, st)
		require.Empty(t, requestID, "request id is only reported while pending")

		count, err := env.dispatcher.UnreadCount(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("double accept reads as gone", func(t *testing.T) {
		_, err := env.friends.Accept(ctx, bob.ID, rel.ID)
		require.ErrorIs(t, err, ErrAlreadyFriends)
	})

	t.Run("requesting an existing friend fails", func(t *testing.T) {
		_, err := env.friends.SendRequest(ctx, alice.ID, "bob")
		require.ErrorIs(t, err, ErrAlreadyFriends)
	})

	t.Run("remove is silent and idempotent", func(t *testing.T) {
		require.NoError(t, env.friends.Remove(ctx, alice.ID, bob.ID))
		require.NoError(t, env.friends.Remove(ctx, alice.ID, bob.ID))

		st, requestID, err := env.friends.Status(ctx, bob.ID, "alice")
		require.NoError(t, err)
		require.Equal(t, domain.StatusNone, st)
		require.Empty(t, requestID)
	})
}

func TestSendRequestValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")

	_, err := env.friends.SendRequest(ctx, alice.ID, "alice")
	require.ErrorIs(t, err, ErrSelfRequest)

	_, err = env.friends.SendRequest(ctx, alice.ID, "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestRejectDeletesWithoutNotifying(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	rel, err := env.friends.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)

	require.NoError(t, env.friends.Reject(ctx, bob.ID, rel.ID))

	st, _, err := env.friends.Status(ctx, alice.ID, "bob")
	require.NoError(t, err)
	require.Equal(t, domain.StatusNone, st)

	// The requester learns nothing.
	count, err := env.dispatcher.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	require.Zero(t, count)

	// A fresh request is possible afterwards.
	_, err = env.friends.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)
}

func TestConcurrentOppositeRequests(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = env.friends.SendRequest(ctx, alice.ID, "bob")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = env.friends.SendRequest(ctx, bob.ID, "alice")
	}()
	wg.Wait()

	// At most one record exists regardless of who won.
	var winners int
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrDuplicateRequest)
		}
	}
	require.Equal(t, 1, winners)

	pending, err := env.queries.Pending(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
}

func TestQueryViews(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")
	carol := env.register(t, "carol")

	rel, err := env.friends.SendRequest(ctx, alice.ID, "bob")
	require.NoError(t, err)
	_, err = env.friends.Accept(ctx, bob.ID, rel.ID)
	require.NoError(t, err)

	_, err = env.friends.SendRequest(ctx, carol.ID, "alice")
	require.NoError(t, err)

	t.Run("friends are joined with usernames", func(t *testing.T) {
		friends, err := env.queries.Friends(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, friends, 1)
		require.Equal(t, "bob", friends[0].Username)
		require.False(t, friends[0].Since.IsZero())
	})

	t.Run("pending marks direction", func(t *testing.T) {
		pending, err := env.queries.Pending(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		require.Equal(t, "carol", pending[0].Username)
		require.True(t, pending[0].Incoming)

		pending, err = env.queries.Pending(ctx, carol.ID)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		require.False(t, pending[0].Incoming)
	})

	t.Run("bulk status covers all states", func(t *testing.T) {
		statuses, err := env.queries.StatusWith(ctx, alice.ID, []string{bob.ID, carol.ID, "ghost"})
		require.NoError(t, err)
		require.Equal(t, domain.StatusFriends, statuses[bob.ID])
		require.Equal(t, domain.StatusPendingReceived, statuses[carol.ID])
		require.Equal(t, domain.StatusNone, statuses["ghost"])
	})
}
