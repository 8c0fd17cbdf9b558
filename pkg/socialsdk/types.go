package socialsdk

import "time"

// ErrorResponse is the wire shape of every error the service returns.
type ErrorResponse struct {
	// Error is a stable machine-readable code (e.g. "invite_expired").
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error.
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Auth
// ============================================================================

// RegisterRequest creates an account. Email and phone are optional and start
// unverified.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest authenticates with username and password.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token and the authenticated profile.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        User   `json:"user"`
}

// User is the public view of an account. Contact channels are only present
// on the owner's own profile.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	EmailVerified bool      `json:"email_verified,omitempty"`
	PhoneVerified bool      `json:"phone_verified,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SearchResponse lists users matching a username query.
type SearchResponse struct {
	Users []User `json:"users"`
}

// UpdateContactRequest replaces the caller's email or phone. The new value
// must be re-verified.
type UpdateContactRequest struct {
	Channel string `json:"channel"` // "email" or "phone"
	Value   string `json:"value"`
}

// VerifyStartRequest asks for a verification code on a channel.
type VerifyStartRequest struct {
	Channel string `json:"channel"`
}

// VerifyConfirmRequest submits a received verification code.
type VerifyConfirmRequest struct {
	Channel string `json:"channel"`
	Code    string `json:"code"`
}

// ============================================================================
// Friends
// ============================================================================

// FriendRequestRequest targets a user by username.
type FriendRequestRequest struct {
	Username string `json:"username"`
}

// FriendRequest is one pending request.
type FriendRequest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Incoming  bool      `json:"incoming"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendRequestResponse is returned when a request is created or accepted.
type FriendRequestResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Friend is one accepted friendship from the caller's side.
type Friend struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Since    time.Time `json:"since"`
}

// FriendsResponse lists the caller's friends.
type FriendsResponse struct {
	Friends []Friend `json:"friends"`
}

// PendingResponse lists open friend requests in both directions.
type PendingResponse struct {
	Requests []FriendRequest `json:"requests"`
}

// StatusResponse reports the relationship with one user:
// none, pending_sent, pending_received or friends.
type StatusResponse struct {
	Username  string `json:"username"`
	Status    string `json:"status"`
	RequestID string `json:"request_id,omitempty"`
}

// ============================================================================
// Invites
// ============================================================================

// InviteRecipient is one slot address. Channel may be omitted and is then
// detected from the value.
type InviteRecipient struct {
	Channel string `json:"channel,omitempty"` // "username", "email" or "phone"
	Value   string `json:"value"`
}

// CreateInviteRequest addresses exactly two recipients. TTLHours is
// optional; the server default applies when zero.
type CreateInviteRequest struct {
	Recipients [2]InviteRecipient `json:"recipients"`
	TTLHours   int                `json:"ttl_hours,omitempty"`
}

// InviteSlot is the public state of one recipient slot.
type InviteSlot struct {
	Channel  string `json:"channel"`
	Value    string `json:"value"`
	Accepted bool   `json:"accepted"`
}

// Invite is an invite as seen by its creator or a recipient.
type Invite struct {
	Code      string        `json:"code"`
	CreatedBy string        `json:"created_by"`
	Slots     [2]InviteSlot `json:"slots"`
	ThreadID  string        `json:"thread_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// InvitesResponse lists open invites involving the caller.
type InvitesResponse struct {
	Invites []Invite `json:"invites"`
}

// InviteStatusResponse is the code-holder's lifecycle view.
type InviteStatusResponse struct {
	Code      string    `json:"code"`
	Accepted  [2]bool   `json:"accepted"`
	Resolved  bool      `json:"resolved"`
	ThreadID  string    `json:"thread_id,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
	IsExpired bool      `json:"is_expired"`
}

// AcceptInviteRequest claims one slot; Recipient is 1 or 2.
type AcceptInviteRequest struct {
	Recipient int `json:"recipient"`
}

// AcceptInviteResponse reports the slot claim. Thread is set only on the
// acceptance that resolved the invite.
type AcceptInviteResponse struct {
	Invite Invite  `json:"invite"`
	Thread *Thread `json:"thread,omitempty"`
}

// ResendInviteRequest re-delivers the invite to one slot.
type ResendInviteRequest struct {
	Recipient int `json:"recipient"`
}

// Thread is a conversation created by a resolved invite.
type Thread struct {
	ID           string    `json:"id"`
	Participants []string  `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

// ============================================================================
// Notifications
// ============================================================================

// Notification is one entry in a user's notification feed.
type Notification struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	FromUserID string    `json:"from_user_id,omitempty"`
	RelatedID  string    `json:"related_id,omitempty"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationsResponse lists notifications newest first.
type NotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

// UnreadCountResponse carries the unread badge count.
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// MarkReadRequest flips the listed notifications to read.
type MarkReadRequest struct {
	IDs []string `json:"ids"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by the livez and readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
