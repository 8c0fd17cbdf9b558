package store

import (
	"context"
	"errors"
	"time"

	"github.com/tetherchat/tether/internal/social/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. Sub-repositories keep concerns tidy and let the Tx-scoped
// store expose the same surface inside a transaction.
type Store interface {
	Users() Users
	Relationships() Relationships
	Invites() Invites
	Threads() Threads
	Notifications() Notifications

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST Commit() or Rollback() the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Preferred over Tx for most callers.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying database handle.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists on username/email/phone collision.
	CreateUser(ctx context.Context, u domain.User) error

	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByPhone(ctx context.Context, phone string) (domain.User, error)

	// SearchUsers matches usernames case-insensitively by substring.
	SearchUsers(ctx context.Context, query string, limit int) ([]domain.User, error)

	// UpdateContact replaces a contact channel value and clears its
	// verified-at timestamp. Channel must be email or phone.
	UpdateContact(ctx context.Context, userID string, channel domain.Channel, value string) error

	// MarkContactVerified stamps the verified-at timestamp for a channel.
	MarkContactVerified(ctx context.Context, userID string, channel domain.Channel, at time.Time) error

	// SetOTPSecret stores the contact-verification TOTP secret.
	SetOTPSecret(ctx context.Context, userID string, secret string) error
}

type Relationships interface {
	// CreateRelationship inserts a pending record. The unique index on the
	// ordered pair makes this the atomic arbiter for concurrent requests in
	// both directions: the loser gets ErrAlreadyExists.
	CreateRelationship(ctx context.Context, r domain.Relationship) error

	GetRelationshipByID(ctx context.Context, id string) (domain.Relationship, error)
	GetRelationshipByPair(ctx context.Context, userA, userB string) (domain.Relationship, error)

	// AcceptRelationship flips pending -> friends with a guarded update;
	// ErrNotFound when the record is gone or already accepted.
	AcceptRelationship(ctx context.Context, id string, at time.Time) error

	// DeleteRelationship removes the record by id (reject).
	DeleteRelationship(ctx context.Context, id string) error

	// DeleteFriendship removes an accepted record for the pair. Idempotent:
	// returns nil when no such record exists.
	DeleteFriendship(ctx context.Context, userA, userB string) error

	// ListPendingFor returns pending records where userID is requester or
	// recipient, newest first.
	ListPendingFor(ctx context.Context, userID string) ([]domain.Relationship, error)

	// ListFriendsOf returns accepted records involving userID.
	ListFriendsOf(ctx context.Context, userID string) ([]domain.Relationship, error)
}

type Invites interface {
	// CreateInvite writes a new invite; ErrAlreadyExists on code collision.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	GetInviteByCode(ctx context.Context, code string) (domain.Invite, error)

	// AcceptSlot stamps a slot's acceptance and resolved user id with a
	// guarded update. ErrAlreadyExists when the slot was already accepted,
	// ErrNotFound for an unknown code. slot is 0 or 1.
	AcceptSlot(ctx context.Context, code string, slot int, userID string, at time.Time) error

	// MarkResolved performs the exactly-once resolution transition: it sets
	// thread_id only when both slots are accepted and thread_id is still
	// null. Returns true for the single winning caller.
	MarkResolved(ctx context.Context, code string, threadID string, at time.Time) (bool, error)

	// ListOpenFor returns unresolved, unexpired invites created by the user
	// or addressed to any of the given identity values (resolved user id,
	// username, verified email/phone).
	ListOpenFor(ctx context.Context, userID string, identities []string, now time.Time) ([]domain.Invite, error)

	// DeleteExpiredInvites removes unresolved invites past their expiry.
	DeleteExpiredInvites(ctx context.Context, now time.Time) error
}

type Threads interface {
	// CreateThread inserts the thread and its participant rows.
	CreateThread(ctx context.Context, t domain.Thread) error

	GetThreadByID(ctx context.Context, id string) (domain.Thread, error)
}

type Notifications interface {
	CreateNotification(ctx context.Context, n domain.Notification) error

	// ListNotificationsFor returns a user's notifications newest first.
	ListNotificationsFor(ctx context.Context, userID string, limit int, unreadOnly bool) ([]domain.Notification, error)

	CountUnread(ctx context.Context, userID string) (int, error)

	// MarkNotificationsRead flips read=1 for the given ids scoped to the
	// owner; ids belonging to other users are ignored.
	MarkNotificationsRead(ctx context.Context, userID string, ids []string) error

	MarkAllNotificationsRead(ctx context.Context, userID string) error

	// DeleteNotification removes one notification owned by userID;
	// ErrNotFound when missing or owned by someone else.
	DeleteNotification(ctx context.Context, userID string, id string) error

	// DeleteReadNotificationsBefore is housekeeping: prunes read
	// notifications created before the cutoff.
	DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) error
}
