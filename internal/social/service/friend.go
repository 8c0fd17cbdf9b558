package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/store"
	"github.com/tetherchat/tether/pkg/idx"
	"github.com/tetherchat/tether/pkg/slogx"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrSelfRequest      = errors.New("cannot friend yourself")
	ErrAlreadyFriends   = errors.New("already friends")
	ErrDuplicateRequest = errors.New("a request between these users already exists")
	ErrRequestNotFound  = errors.New("friend request not found")
	ErrNotAuthorized    = errors.New("not authorized for this request")
)

// FriendService owns the pairwise relationship state machine. One record per
// unordered user pair; the store's unique pair index arbitrates concurrent
// requests in either direction.
type FriendService struct {
	Store      store.Store
	Dispatcher *NotificationDispatcher
}

// SendRequest creates a pending friend request from requesterID to the user
// named targetUsername. Re-sending the same request is idempotent and
// returns the existing record; a pending request in the opposite direction
// is reported as ErrDuplicateRequest so the caller accepts instead.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, targetUsername string) (domain.Relationship, error) {
	log := slogx.FromContext(ctx)

	// 1. Resolve the target.
	target, err := s.Store.Users().GetUserByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Relationship{}, ErrUserNotFound
		}
		log.Error("failed to fetch target user", slog.Any("error", err))
		return domain.Relationship{}, err
	}
	if target.ID == requesterID {
		return domain.Relationship{}, ErrSelfRequest
	}

	// 2. Check for an existing record for the pair.
	existing, err := s.Store.Relationships().GetRelationshipByPair(ctx, requesterID, target.ID)
	switch {
	case err == nil:
		return classifyExisting(existing, requesterID)
	case !errors.Is(err, store.ErrNotFound):
		log.Error("failed to fetch relationship", slog.Any("error", err))
		return domain.Relationship{}, err
	}

	// 3. Create the pending record. A concurrent request for the same pair
	// loses here with ErrAlreadyExists; re-read and classify it the same
	// way as a pre-existing record.
	lo, hi := domain.OrderPair(requesterID, target.ID)
	rel := domain.Relationship{
		ID:          idx.New().String(),
		PairLo:      lo,
		PairHi:      hi,
		RequesterID: requesterID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Store.Relationships().CreateRelationship(ctx, rel); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			existing, gerr := s.Store.Relationships().GetRelationshipByPair(ctx, requesterID, target.ID)
			if gerr != nil {
				return domain.Relationship{}, ErrDuplicateRequest
			}
			return classifyExisting(existing, requesterID)
		}
		log.Error("failed to create relationship", slog.Any("error", err))
		return domain.Relationship{}, err
	}

	// 4. Notify the recipient.
	requester, err := s.Store.Users().GetUserByID(ctx, requesterID)
	if err != nil {
		log.Error("failed to fetch requester", slog.Any("error", err))
		return domain.Relationship{}, err
	}
	_, err = s.Dispatcher.Dispatch(ctx, domain.Notification{
		UserID:     target.ID,
		Type:       domain.NotificationFriendRequest,
		Title:      "New friend request",
		Message:    fmt.Sprintf("%s sent you a friend request", requester.Username),
		FromUserID: requesterID,
		RelatedID:  rel.ID,
	})
	if err != nil {
		return domain.Relationship{}, err
	}

	log.Info("friend request sent",
		slog.String("relationship_id", rel.ID),
		slog.String("requester_id", requesterID),
		slog.String("target_id", target.ID),
	)
	return rel, nil
}

// classifyExisting maps an existing pair record to the outcome the requester
// should see. Re-sending one's own pending request is idempotent and returns
// the existing record with no new notification; a pending request from the
// other side is ErrDuplicateRequest so the caller accepts it instead.
func classifyExisting(rel domain.Relationship, requesterID string) (domain.Relationship, error) {
	switch {
	case rel.Friends:
		return domain.Relationship{}, ErrAlreadyFriends
	case rel.RequesterID == requesterID:
		return rel, nil
	default:
		return domain.Relationship{}, ErrDuplicateRequest
	}
}

// Accept transitions a pending request to friends. Only the recipient may
// accept; the guarded store update makes concurrent accept/reject of the
// same request settle to exactly one outcome.
func (s *FriendService) Accept(ctx context.Context, userID, requestID string) (domain.Relationship, error) {
	log := slogx.FromContext(ctx)

	rel, err := s.authorizedPending(ctx, userID, requestID)
	if err != nil {
		return domain.Relationship{}, err
	}

	now := time.Now().UTC()
	if err := s.Store.Relationships().AcceptRelationship(ctx, rel.ID, now); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Lost a race with a reject or a duplicate accept.
			return domain.Relationship{}, ErrRequestNotFound
		}
		log.Error("failed to accept relationship", slog.Any("error", err))
		return domain.Relationship{}, err
	}
	rel.Friends = true
	rel.AcceptedAt = &now

	accepter, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		log.Error("failed to fetch accepter", slog.Any("error", err))
		return domain.Relationship{}, err
	}
	_, err = s.Dispatcher.Dispatch(ctx, domain.Notification{
		UserID:     rel.RequesterID,
		Type:       domain.NotificationFriendAccepted,
		Title:      "Friend request accepted",
		Message:    fmt.Sprintf("%s accepted your friend request", accepter.Username),
		FromUserID: userID,
		RelatedID:  rel.ID,
	})
	if err != nil {
		return domain.Relationship{}, err
	}

	log.Info("friend request accepted",
		slog.String("relationship_id", rel.ID),
		slog.String("accepter_id", userID),
	)
	return rel, nil
}

// Reject deletes a pending request. The requester is not notified; from
// their viewpoint the request simply stays unanswered.
func (s *FriendService) Reject(ctx context.Context, userID, requestID string) error {
	log := slogx.FromContext(ctx)

	rel, err := s.authorizedPending(ctx, userID, requestID)
	if err != nil {
		return err
	}

	if err := s.Store.Relationships().DeleteRelationship(ctx, rel.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRequestNotFound
		}
		log.Error("failed to delete relationship", slog.Any("error", err))
		return err
	}

	log.Info("friend request rejected",
		slog.String("relationship_id", rel.ID),
		slog.String("rejecter_id", userID),
	)
	return nil
}

// authorizedPending loads a pending request and checks userID is its
// recipient.
func (s *FriendService) authorizedPending(ctx context.Context, userID, requestID string) (domain.Relationship, error) {
	rel, err := s.Store.Relationships().GetRelationshipByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Relationship{}, ErrRequestNotFound
		}
		return domain.Relationship{}, err
	}
	if rel.Friends {
		return domain.Relationship{}, ErrAlreadyFriends
	}
	if rel.RecipientID() != userID {
		return domain.Relationship{}, ErrNotAuthorized
	}
	return rel, nil
}

// Remove unfriends two users. Idempotent: removing a friendship that does
// not exist succeeds, so retries and races are harmless. The other party is
// not notified.
func (s *FriendService) Remove(ctx context.Context, userID, otherID string) error {
	if userID == otherID {
		return ErrSelfRequest
	}
	if err := s.Store.Relationships().DeleteFriendship(ctx, userID, otherID); err != nil {
		slogx.FromContext(ctx).Error("failed to delete friendship", slog.Any("error", err))
		return err
	}
	return nil
}

// Status reports the relationship between viewer and the named user from the
// viewer's side. For pending states it also returns the request id so the
// caller can accept or reject without a second lookup.
func (s *FriendService) Status(ctx context.Context, viewerID, otherUsername string) (domain.RelationshipStatus, string, error) {
	other, err := s.Store.Users().GetUserByUsername(ctx, otherUsername)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}

	rel, err := s.Store.Relationships().GetRelationshipByPair(ctx, viewerID, other.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.StatusNone, "", nil
		}
		return "", "", err
	}

	status := rel.StatusFor(viewerID)
	requestID := ""
	if status == domain.StatusPendingSent || status == domain.StatusPendingReceived {
		requestID = rel.ID
	}
	return status, requestID, nil
}
