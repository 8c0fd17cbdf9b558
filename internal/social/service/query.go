package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/store"
	"github.com/tetherchat/tether/pkg/slogx"
)

// FriendEntry is one row of a friends list, joined with the other party's
// public profile.
type FriendEntry struct {
	UserID   string
	Username string
	Since    time.Time
}

// PendingEntry is one pending friend request as seen by the listing user.
type PendingEntry struct {
	RequestID string
	UserID    string
	Username  string
	Incoming  bool
	CreatedAt time.Time
}

// QueryService serves the read side: friends, pending requests, and
// relationship status, joined with usernames for display.
type QueryService struct {
	Store store.Store
}

// Friends lists the user's accepted friendships, most recent first.
func (s *QueryService) Friends(ctx context.Context, userID string) ([]FriendEntry, error) {
	rels, err := s.Store.Relationships().ListFriendsOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]FriendEntry, 0, len(rels))
	for _, rel := range rels {
		other, err := s.otherParty(ctx, rel, userID)
		if err != nil {
			return nil, err
		}
		since := rel.CreatedAt
		if rel.AcceptedAt != nil {
			since = *rel.AcceptedAt
		}
		entries = append(entries, FriendEntry{
			UserID:   other.ID,
			Username: other.Username,
			Since:    since,
		})
	}
	return entries, nil
}

// Pending lists the user's open friend requests, both directions.
func (s *QueryService) Pending(ctx context.Context, userID string) ([]PendingEntry, error) {
	rels, err := s.Store.Relationships().ListPendingFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]PendingEntry, 0, len(rels))
	for _, rel := range rels {
		other, err := s.otherParty(ctx, rel, userID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, PendingEntry{
			RequestID: rel.ID,
			UserID:    other.ID,
			Username:  other.Username,
			Incoming:  rel.RequesterID != userID,
			CreatedAt: rel.CreatedAt,
		})
	}
	return entries, nil
}

// StatusWith reports the relationship between viewer and each of the given
// user ids; missing records read as none.
func (s *QueryService) StatusWith(ctx context.Context, viewerID string, userIDs []string) (map[string]domain.RelationshipStatus, error) {
	out := make(map[string]domain.RelationshipStatus, len(userIDs))
	for _, id := range userIDs {
		if id == viewerID {
			continue
		}
		rel, err := s.Store.Relationships().GetRelationshipByPair(ctx, viewerID, id)
		if errors.Is(err, store.ErrNotFound) {
			out[id] = domain.StatusNone
			continue
		}
		if err != nil {
			return nil, err
		}
		out[id] = rel.StatusFor(viewerID)
	}
	return out, nil
}

func (s *QueryService) otherParty(ctx context.Context, rel domain.Relationship, userID string) (domain.User, error) {
	other, err := s.Store.Users().GetUserByID(ctx, rel.OtherParty(userID))
	if err != nil {
		slogx.FromContext(ctx).Error("failed to fetch relationship party",
			slog.String("relationship_id", rel.ID),
			slog.Any("error", err),
		)
		return domain.User{}, err
	}
	return other, nil
}
