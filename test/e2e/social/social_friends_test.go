package social_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tetherchat/tether/pkg/socialsdk"
)

// TestFriendLifecycle walks the whole relationship arc: request, pending
// views on both sides, accept, friends lists, status, and removal.
func TestFriendLifecycle(t *testing.T) {
	baseURL, cleanup := setupSocialContainer(t)
	defer cleanup()

	client := socialsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	alice := registerAndLogin(t, client, "alice")
	bob := registerAndLogin(t, client, "bob")

	resp, err := alice.SendFriendRequest(ctx, "bob")
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "pending_sent", resp.Status)

	// Both sides see the pending request, with opposite directions.
	fromAlice := findRequestFrom(t, bob, "alice")
	require.Equal(t, resp.ID, fromAlice.ID)

	outgoing, err := alice.PendingFriendRequests(ctx)
	require.NoError(t, err)
	require.Len(t, outgoing, 1)
	require.False(t, outgoing[0].Incoming)

	// While pending, the status view hands both sides the request id.
	pending, err := alice.FriendStatus(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "pending_sent", pending.Status)
	require.Equal(t, resp.ID, pending.RequestID)

	pending, err = bob.FriendStatus(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "pending_received", pending.Status)
	require.Equal(t, resp.ID, pending.RequestID)

	// The recipient gets a notification.
	count, err := bob.UnreadCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	_, err = bob.AcceptFriendRequest(ctx, fromAlice.ID)
	require.NoError(t, err)

	friendsOfAlice, err := alice.Friends(ctx)
	require.NoError(t, err)
	require.Len(t, friendsOfAlice, 1)
	require.Equal(t, "bob", friendsOfAlice[0].Username)
	require.False(t, friendsOfAlice[0].Since.IsZero())

	status, err := alice.FriendStatus(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "friends", status.Status)
	require.Empty(t, status.RequestID)

	// Removal is symmetric and idempotent.
	require.NoError(t, bob.Unfriend(ctx, alice.User.ID))
	require.NoError(t, bob.Unfriend(ctx, alice.User.ID))

	status, err = alice.FriendStatus(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, "none", status.Status)
}

func TestFriendRequestRules(t *testing.T) {
	baseURL, cleanup := setupSocialContainer(t)
	defer cleanup()

	client := socialsdk.NewSDKClient(baseURL)
	ctx := context.Background()

	alice := registerAndLogin(t, client, "alice")
	bob := registerAndLogin(t, client, "bob")
	eve := registerAndLogin(t, client, "eve")

	// Self-friending is rejected outright.
	_, err := alice.SendFriendRequest(ctx, "alice")
	requireAPIErrorCode(t, err, socialsdk.ErrorCodeInvalidRequest)

	_, err = alice.SendFriendRequest(ctx, "nobody")
	requireAPIErrorCode(t, err, socialsdk.ErrorCodeNotFound)

	first, err := alice.SendFriendRequest(ctx, "bob")
	require.NoError(t, err)

	// Repeating the same request is idempotent, not an error.
	second, err := alice.SendFriendRequest(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)

	// Bob answering with his own request is told one already exists.
	_, err = bob.SendFriendRequest(ctx, "alice")
	requireAPIErrorCode(t, err, socialsdk.ErrorCodeConflict)

	// Only the recipient may accept.
	_, err = eve.AcceptFriendRequest(ctx, first.ID)
	requireAPIErrorCode(t, err, socialsdk.ErrorCodeForbidden)

	// Rejection removes the request quietly; no notification for the sender.
	require.NoError(t, bob.RejectFriendRequest(ctx, first.ID))

	pending, err := alice.PendingFriendRequests(ctx)
	require.NoError(t, err)
	require.Empty(t, pending)

	count, err := alice.UnreadCount(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}
