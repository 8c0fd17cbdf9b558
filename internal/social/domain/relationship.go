package domain

import "time"

// RelationshipStatus is the closed set of pairwise relationship states as
// seen from one user's viewpoint. Defined once; every layer consumes these
// constants rather than ad-hoc strings.
type RelationshipStatus string

const (
	StatusNone            RelationshipStatus = "none"
	StatusPendingSent     RelationshipStatus = "pending_sent"
	StatusPendingReceived RelationshipStatus = "pending_received"
	StatusFriends         RelationshipStatus = "friends"
)

// Relationship is the single authoritative record for an unordered user
// pair. PairLo/PairHi hold the two user ids in lexicographic order so the
// store can enforce at-most-one record per pair with a unique index.
// RequesterID carries the direction while the record is pending. Rejecting
// or unfriending deletes the record; no history is kept.
type Relationship struct {
	ID          string
	PairLo      string
	PairHi      string
	RequesterID string
	Friends     bool
	CreatedAt   time.Time
	AcceptedAt  *time.Time
}

// OrderPair returns the two user ids in lexicographic order.
func OrderPair(a, b string) (lo, hi string) {
	if a < b {
		return a, b
	}
	return b, a
}

// RecipientID returns the user on the receiving end of a pending request.
func (r Relationship) RecipientID() string {
	if r.RequesterID == r.PairLo {
		return r.PairHi
	}
	return r.PairLo
}

// Involves reports whether userID is one of the pair.
func (r Relationship) Involves(userID string) bool {
	return r.PairLo == userID || r.PairHi == userID
}

// OtherParty returns the pair member that is not userID.
func (r Relationship) OtherParty(userID string) string {
	if r.PairLo == userID {
		return r.PairHi
	}
	return r.PairLo
}

// StatusFor reports the relationship status from viewer's viewpoint.
func (r Relationship) StatusFor(viewer string) RelationshipStatus {
	switch {
	case r.Friends:
		return StatusFriends
	case r.RequesterID == viewer:
		return StatusPendingSent
	default:
		return StatusPendingReceived
	}
}
