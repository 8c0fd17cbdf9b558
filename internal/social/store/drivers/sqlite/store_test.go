package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/store"
	"github.com/tetherchat/tether/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "social.db")
	s, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s *Store, username string) domain.User {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Millisecond)
	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsersRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	u := seedUser(t, s, "alice")

	t.Run("duplicate username is already exists", func(t *testing.T) {
		dup := u
		dup.ID = idx.New().String()
		err := s.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("username lookup is case-insensitive", func(t *testing.T) {
		got, err := s.Users().GetUserByUsername(ctx, "ALICE")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	})

	t.Run("unknown user is not found", func(t *testing.T) {
		_, err := s.Users().GetUserByID(ctx, "missing")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("contact update clears verification", func(t *testing.T) {
		require.NoError(t, s.Users().UpdateContact(ctx, u.ID, domain.ChannelEmail, "alice@example.com"))
		require.NoError(t, s.Users().MarkContactVerified(ctx, u.ID, domain.ChannelEmail, time.Now()))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, got.EmailVerifiedAt)

		require.NoError(t, s.Users().UpdateContact(ctx, u.ID, domain.ChannelEmail, "alice2@example.com"))
		got, err = s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "alice2@example.com", got.Email)
		require.Nil(t, got.EmailVerifiedAt)
	})

	t.Run("search matches substrings without leaking wildcards", func(t *testing.T) {
		seedUser(t, s, "ali_son")

		users, err := s.Users().SearchUsers(ctx, "ali", 10)
		require.NoError(t, err)
		require.Len(t, users, 2)

		// A literal underscore in the query must not act as a wildcard.
		users, err = s.Users().SearchUsers(ctx, "i_s", 10)
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.Equal(t, "ali_son", users[0].Username)
	})
}

func TestRelationshipsRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	a := seedUser(t, s, "ann")
	b := seedUser(t, s, "bob")

	lo, hi := domain.OrderPair(a.ID, b.ID)
	rel := domain.Relationship{
		ID:          idx.New().String(),
		PairLo:      lo,
		PairHi:      hi,
		RequesterID: a.ID,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, s.Relationships().CreateRelationship(ctx, rel))

	t.Run("pair is unique in either direction", func(t *testing.T) {
		reverse := domain.Relationship{
			ID:          idx.New().String(),
			PairLo:      lo,
			PairHi:      hi,
			RequesterID: b.ID,
			CreatedAt:   time.Now().UTC(),
		}
		err := s.Relationships().CreateRelationship(ctx, reverse)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("accept flips pending to friends exactly once", func(t *testing.T) {
		require.NoError(t, s.Relationships().AcceptRelationship(ctx, rel.ID, time.Now()))

		got, err := s.Relationships().GetRelationshipByPair(ctx, b.ID, a.ID)
		require.NoError(t, err)
		require.True(t, got.Friends)
		require.NotNil(t, got.AcceptedAt)

		err = s.Relationships().AcceptRelationship(ctx, rel.ID, time.Now())
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("friendship delete is idempotent", func(t *testing.T) {
		require.NoError(t, s.Relationships().DeleteFriendship(ctx, a.ID, b.ID))
		require.NoError(t, s.Relationships().DeleteFriendship(ctx, a.ID, b.ID))

		_, err := s.Relationships().GetRelationshipByPair(ctx, a.ID, b.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestInvitesRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	creator := seedUser(t, s, "carol")
	dave := seedUser(t, s, "dave")
	erin := seedUser(t, s, "erin")

	now := time.Now().UTC().Truncate(time.Millisecond)
	inv := domain.Invite{
		ID:        idx.New().String(),
		Code:      "code-1",
		CreatedBy: creator.ID,
		Slots: [2]domain.Slot{
			{Channel: domain.ChannelUsername, Value: "dave", UserID: dave.ID},
			{Channel: domain.ChannelEmail, Value: "erin@example.com"},
		},
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
		UpdatedAt: now,
	}
	require.NoError(t, s.Invites().CreateInvite(ctx, inv))

	t.Run("round trip preserves slots", func(t *testing.T) {
		got, err := s.Invites().GetInviteByCode(ctx, "code-1")
		require.NoError(t, err)
		require.Equal(t, inv.Slots[0], got.Slots[0])
		require.Equal(t, inv.Slots[1], got.Slots[1])
		require.False(t, got.Resolved())
	})

	t.Run("slot acceptance is first-writer-wins", func(t *testing.T) {
		require.NoError(t, s.Invites().AcceptSlot(ctx, "code-1", 0, dave.ID, now))

		err := s.Invites().AcceptSlot(ctx, "code-1", 0, dave.ID, now)
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		err = s.Invites().AcceptSlot(ctx, "missing", 0, dave.ID, now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("resolution needs both slots and wins once", func(t *testing.T) {
		won, err := s.Invites().MarkResolved(ctx, "code-1", "thread-x", now)
		require.NoError(t, err)
		require.False(t, won, "one accepted slot must not resolve")

		require.NoError(t, s.Invites().AcceptSlot(ctx, "code-1", 1, erin.ID, now))

		thread := domain.Thread{
			ID:           "thread-1",
			CreatedBy:    creator.ID,
			Participants: []string{creator.ID, dave.ID, erin.ID},
			CreatedAt:    now,
		}
		require.NoError(t, s.Threads().CreateThread(ctx, thread))

		won, err = s.Invites().MarkResolved(ctx, "code-1", thread.ID, now)
		require.NoError(t, err)
		require.True(t, won)

		won, err = s.Invites().MarkResolved(ctx, "code-1", thread.ID, now)
		require.NoError(t, err)
		require.False(t, won, "second resolution attempt must lose")
	})

	t.Run("open invites match creator and identities", func(t *testing.T) {
		open := domain.Invite{
			ID:        idx.New().String(),
			Code:      "code-2",
			CreatedBy: creator.ID,
			Slots: [2]domain.Slot{
				{Channel: domain.ChannelEmail, Value: "erin@example.com"},
				{Channel: domain.ChannelPhone, Value: "+61400000000"},
			},
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
			UpdatedAt: now,
		}
		require.NoError(t, s.Invites().CreateInvite(ctx, open))

		invs, err := s.Invites().ListOpenFor(ctx, creator.ID, nil, now)
		require.NoError(t, err)
		require.Len(t, invs, 1)
		require.Equal(t, "code-2", invs[0].Code)

		invs, err = s.Invites().ListOpenFor(ctx, erin.ID, []string{"erin", "erin@example.com"}, now)
		require.NoError(t, err)
		require.Len(t, invs, 1)

		// Past the expiry nothing shows.
		invs, err = s.Invites().ListOpenFor(ctx, creator.ID, nil, now.Add(2*time.Hour))
		require.NoError(t, err)
		require.Empty(t, invs)
	})

	t.Run("expired unresolved invites are pruned, resolved ones kept", func(t *testing.T) {
		require.NoError(t, s.Invites().DeleteExpiredInvites(ctx, now.Add(2*time.Hour)))

		_, err := s.Invites().GetInviteByCode(ctx, "code-2")
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := s.Invites().GetInviteByCode(ctx, "code-1")
		require.NoError(t, err)
		require.True(t, got.Resolved())
	})
}

func TestNotificationsRepo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	owner := seedUser(t, s, "frank")
	other := seedUser(t, s, "grace")

	now := time.Now().UTC().Truncate(time.Millisecond)
	mk := func(userID string, at time.Time) domain.Notification {
		n := domain.Notification{
			ID:        idx.New().String(),
			UserID:    userID,
			Type:      domain.NotificationFriendRequest,
			Title:     "Friend request",
			Message:   "hello",
			Method:    domain.DeliveryInApp,
			CreatedAt: at,
		}
		require.NoError(t, s.Notifications().CreateNotification(ctx, n))
		return n
	}

	first := mk(owner.ID, now.Add(-time.Minute))
	second := mk(owner.ID, now)
	foreign := mk(other.ID, now)

	t.Run("list is newest first and honours unread filter", func(t *testing.T) {
		ns, err := s.Notifications().ListNotificationsFor(ctx, owner.ID, 10, false)
		require.NoError(t, err)
		require.Len(t, ns, 2)
		require.Equal(t, second.ID, ns[0].ID)

		count, err := s.Notifications().CountUnread(ctx, owner.ID)
		require.NoError(t, err)
		require.Equal(t, 2, count)
	})

	t.Run("mark read is owner scoped", func(t *testing.T) {
		err := s.Notifications().MarkNotificationsRead(ctx, owner.ID, []string{first.ID, foreign.ID})
		require.NoError(t, err)

		count, err := s.Notifications().CountUnread(ctx, owner.ID)
		require.NoError(t, err)
		require.Equal(t, 1, count)

		// The foreign id was ignored, not flipped.
		count, err = s.Notifications().CountUnread(ctx, other.ID)
		require.NoError(t, err)
		require.Equal(t, 1, count)
	})

	t.Run("delete rejects other users' notifications", func(t *testing.T) {
		err := s.Notifications().DeleteNotification(ctx, owner.ID, foreign.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, s.Notifications().DeleteNotification(ctx, other.ID, foreign.ID))
	})

	t.Run("housekeeping prunes only old read rows", func(t *testing.T) {
		require.NoError(t, s.Notifications().DeleteReadNotificationsBefore(ctx, now))

		ns, err := s.Notifications().ListNotificationsFor(ctx, owner.ID, 10, false)
		require.NoError(t, err)
		require.Len(t, ns, 1)
		require.Equal(t, second.ID, ns[0].ID)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	errBoom := context.Canceled
	err := s.WithTx(ctx, func(tx store.Tx) error {
		u := domain.User{
			ID:           idx.New().String(),
			Username:     "ghost",
			PasswordHash: "x",
			CreatedAt:    time.Now().UTC(),
			UpdatedAt:    time.Now().UTC(),
		}
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = s.Users().GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}
