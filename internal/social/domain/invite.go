package domain

import "time"

// Slot is one of the two recipient positions within an invite.
type Slot struct {
	Channel Channel
	Value   string
	// UserID is the resolved user: set at creation for username slots, and
	// stamped on acceptance for email/phone slots.
	UserID     string
	AcceptedAt *time.Time
}

// Accepted reports whether this slot has been accepted.
func (s Slot) Accepted() bool { return s.AcceptedAt != nil }

// Invite is a two-recipient, time-bounded token connecting two identities
// into a conversation thread once both accept.
//
// Lifecycle: created -> 0..2 slot acceptances (any order) -> resolved
// (ThreadID set, terminal) or expired (terminal). Expiry is evaluated
// lazily against the clock rather than by a background transition.
type Invite struct {
	ID        string
	Code      string
	CreatedBy string
	Slots     [2]Slot
	ThreadID  string
	CreatedAt time.Time
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// Resolved reports whether both slots accepted and the thread was created.
func (i Invite) Resolved() bool { return i.ThreadID != "" }

// Expired reports whether the invite is past its time bound without having
// resolved. Resolved invites never expire.
func (i Invite) Expired(now time.Time) bool {
	return !i.Resolved() && now.After(i.ExpiresAt)
}

// BothAccepted reports whether both slots have been accepted.
func (i Invite) BothAccepted() bool {
	return i.Slots[0].Accepted() && i.Slots[1].Accepted()
}

// SlotIndex converts a 1-based recipient number into a slot index,
// returning -1 for anything other than 1 or 2.
func SlotIndex(recipientNumber int) int {
	if recipientNumber != 1 && recipientNumber != 2 {
		return -1
	}
	return recipientNumber - 1
}
