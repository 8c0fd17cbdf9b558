package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tetherchat/tether/internal/social/contact"
	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/store"
	"github.com/tetherchat/tether/pkg/cryptox"
	"github.com/tetherchat/tether/pkg/idx"
	"github.com/tetherchat/tether/pkg/slogx"
)

var (
	ErrInviteNotFound     = errors.New("invite not found")
	ErrInviteExpired      = errors.New("invite has expired")
	ErrInviteResolved     = errors.New("invite already resolved")
	ErrAlreadyAccepted    = errors.New("recipient slot already accepted")
	ErrSlotMismatch       = errors.New("caller does not match the recipient slot")
	ErrSameRecipient      = errors.New("both recipients are the same identity")
	ErrInvalidRecipient   = errors.New("invalid recipient")
	ErrResendThrottled    = errors.New("resend throttled, try again later")
	ErrContactNotVerified = errors.New("contact channel not verified")
)

const (
	// DefaultInviteTTL bounds how long an unresolved invite stays
	// acceptable when the creator does not ask for a lifetime.
	DefaultInviteTTL = 24 * time.Hour

	// MaxInviteTTL caps creator-requested lifetimes.
	MaxInviteTTL = 30 * 24 * time.Hour

	resendInterval = 5 * time.Minute
	resendBurst    = 3
)

// RecipientInput is one raw recipient as supplied by the API. Channel may be
// empty, in which case it is auto-detected from the value.
type RecipientInput struct {
	Channel domain.Channel
	Value   string
}

// InviteService owns the two-recipient invite lifecycle: creation, slot
// acceptance, exactly-once resolution into a thread, and resend delivery.
type InviteService struct {
	Store      store.Store
	Resolver   *contact.Resolver
	Dispatcher *NotificationDispatcher

	// TTL for new invites; DefaultInviteTTL when zero.
	TTL time.Duration

	resendMu sync.Mutex
	resend   map[string]*rate.Limiter
}

// Create mints an invite addressed to two recipients. Username recipients
// must exist; email and phone recipients may be strangers who register
// later. Both recipients are notified immediately. A zero ttl means the
// service default; requested lifetimes are capped at MaxInviteTTL.
func (s *InviteService) Create(ctx context.Context, creatorID string, recipients [2]RecipientInput, ttl time.Duration) (domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. Resolve and normalize both recipients.
	var resolved [2]domain.Recipient
	for i, in := range recipients {
		rec, err := s.Resolver.Resolve(ctx, in.Channel, in.Value)
		if err != nil {
			if errors.Is(err, contact.ErrUnknownUser) {
				return domain.Invite{}, ErrUserNotFound
			}
			return domain.Invite{}, fmt.Errorf("%w: %w", ErrInvalidRecipient, err)
		}
		resolved[i] = rec
	}

	// 2. The two slots must address distinct identities.
	same, err := s.sameIdentity(ctx, resolved[0], resolved[1])
	if err != nil {
		log.Error("failed to compare recipients", slog.Any("error", err))
		return domain.Invite{}, err
	}
	if same {
		return domain.Invite{}, ErrSameRecipient
	}

	// 3. Mint the capability code and persist.
	code, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		log.Error("failed to generate invite code", slog.Any("error", err))
		return domain.Invite{}, err
	}

	if ttl <= 0 {
		ttl = s.TTL
	}
	if ttl == 0 {
		ttl = DefaultInviteTTL
	}
	if ttl > MaxInviteTTL {
		ttl = MaxInviteTTL
	}
	now := time.Now().UTC()
	inv := domain.Invite{
		ID:        idx.New().String(),
		Code:      code,
		CreatedBy: creatorID,
		Slots: [2]domain.Slot{
			{Channel: resolved[0].Channel, Value: resolved[0].Value, UserID: resolved[0].UserID},
			{Channel: resolved[1].Channel, Value: resolved[1].Value, UserID: resolved[1].UserID},
		},
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		UpdatedAt: now,
	}
	if err := s.Store.Invites().CreateInvite(ctx, inv); err != nil {
		log.Error("failed to create invite", slog.Any("error", err))
		return domain.Invite{}, err
	}

	// 4. Notify both slots.
	creator, err := s.Store.Users().GetUserByID(ctx, creatorID)
	if err != nil {
		log.Error("failed to fetch creator", slog.Any("error", err))
		return domain.Invite{}, err
	}
	for i := range inv.Slots {
		s.notifySlot(ctx, creator, inv, i)
	}

	log.Info("invite created",
		slog.String("invite_id", inv.ID),
		slog.String("created_by", creatorID),
	)
	return inv, nil
}

// sameIdentity extends Recipient.SameIdentity across channels: a username
// slot also collides with the other slot when that user's contact details
// carry the same email or phone value.
func (s *InviteService) sameIdentity(ctx context.Context, a, b domain.Recipient) (bool, error) {
	if a.SameIdentity(b) {
		return true, nil
	}
	for _, pair := range [][2]domain.Recipient{{a, b}, {b, a}} {
		user, other := pair[0], pair[1]
		if user.UserID == "" {
			continue
		}
		u, err := s.Store.Users().GetUserByID(ctx, user.UserID)
		if err != nil {
			return false, err
		}
		if other.Channel == domain.ChannelEmail && u.Email == other.Value {
			return true, nil
		}
		if other.Channel == domain.ChannelPhone && u.Phone == other.Value {
			return true, nil
		}
	}
	return false, nil
}

// notifySlot delivers the invite to one slot: in-app for registered users,
// email/sms intents for external contacts. Best effort.
func (s *InviteService) notifySlot(ctx context.Context, creator domain.User, inv domain.Invite, slot int) {
	n := domain.Notification{
		Type:       domain.NotificationInvite,
		Title:      "You're invited",
		Message:    fmt.Sprintf("%s invited you to connect. Use code %s to accept.", creator.Username, inv.Code),
		FromUserID: creator.ID,
		RelatedID:  inv.ID,
	}
	sl := inv.Slots[slot]
	switch {
	case sl.UserID != "":
		n.UserID = sl.UserID
	case sl.Channel == domain.ChannelEmail:
		n.Method = domain.DeliveryEmail
		n.Target = sl.Value
	case sl.Channel == domain.ChannelPhone:
		n.Method = domain.DeliverySMS
		n.Target = sl.Value
	}
	if _, err := s.Dispatcher.Dispatch(ctx, n); err != nil {
		slogx.FromContext(ctx).Warn("invite notification failed",
			slog.String("invite_id", inv.ID),
			slog.Int("slot", slot+1),
			slog.Any("error", err),
		)
	}
}

// errResolveLost aborts the resolution transaction when another accept beat
// us to it; the thread insert rolls back with it.
var errResolveLost = errors.New("resolution lost")

// Accept marks one recipient slot accepted for the caller. recipientNumber
// is 1 or 2. When the second slot lands, exactly one caller resolves the
// invite into a new thread; the returned thread is nil for everyone else.
func (s *InviteService) Accept(ctx context.Context, userID, code string, recipientNumber int) (domain.Invite, *domain.Thread, error) {
	log := slogx.FromContext(ctx)

	slot := domain.SlotIndex(recipientNumber)
	if slot < 0 {
		return domain.Invite{}, nil, ErrInvalidRecipient
	}

	// 1. Load and gate on lifecycle state.
	inv, err := s.getInvite(ctx, code)
	if err != nil {
		return domain.Invite{}, nil, err
	}
	if inv.Resolved() {
		return domain.Invite{}, nil, ErrInviteResolved
	}

	// 2. The caller must match the slot's addressed identity.
	caller, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		log.Error("failed to fetch caller", slog.Any("error", err))
		return domain.Invite{}, nil, err
	}
	if err := matchSlot(inv.Slots[slot], caller); err != nil {
		return domain.Invite{}, nil, err
	}

	// 3. First-writer-wins slot acceptance.
	now := time.Now().UTC()
	if err := s.Store.Invites().AcceptSlot(ctx, code, slot, userID, now); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Invite{}, nil, ErrAlreadyAccepted
		case errors.Is(err, store.ErrNotFound):
			return domain.Invite{}, nil, ErrInviteNotFound
		}
		log.Error("failed to accept slot", slog.Any("error", err))
		return domain.Invite{}, nil, err
	}

	inv, err = s.getInvite(ctx, code)
	if err != nil {
		return domain.Invite{}, nil, err
	}

	// 4. Resolve once both slots are in. An invite whose slots resolved to
	// the same account stays open forever rather than producing a
	// single-member thread.
	if !inv.BothAccepted() || inv.Slots[0].UserID == inv.Slots[1].UserID {
		return inv, nil, nil
	}

	thread, err := s.resolve(ctx, inv, now)
	if err != nil {
		return domain.Invite{}, nil, err
	}
	if thread != nil {
		inv.ThreadID = thread.ID
		s.notifyResolved(ctx, inv, *thread)
	}
	return inv, thread, nil
}

// resolve creates the thread and stamps it on the invite in one
// transaction. Under a concurrent dual accept exactly one caller wins the
// MarkResolved compare-and-set; the loser's thread insert rolls back.
func (s *InviteService) resolve(ctx context.Context, inv domain.Invite, now time.Time) (*domain.Thread, error) {
	log := slogx.FromContext(ctx)

	// The thread links the two accepted identities; the creator is recorded
	// as CreatedBy and joins only if they hold a slot.
	participants := []string{inv.Slots[0].UserID, inv.Slots[1].UserID}
	thread := domain.Thread{
		ID:           idx.New().String(),
		CreatedBy:    inv.CreatedBy,
		Participants: participants,
		CreatedAt:    now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Threads().CreateThread(ctx, thread); err != nil {
			return err
		}
		won, err := tx.Invites().MarkResolved(ctx, inv.Code, thread.ID, now)
		if err != nil {
			return err
		}
		if !won {
			return errResolveLost
		}
		return nil
	})
	if errors.Is(err, errResolveLost) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to resolve invite",
			slog.String("invite_id", inv.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	log.Info("invite resolved",
		slog.String("invite_id", inv.ID),
		slog.String("thread_id", thread.ID),
	)
	return &thread, nil
}

// notifyResolved sends exactly two resolution notifications, one per
// accepted slot.
func (s *InviteService) notifyResolved(ctx context.Context, inv domain.Invite, thread domain.Thread) {
	for _, sl := range inv.Slots {
		uid := sl.UserID
		_, err := s.Dispatcher.Dispatch(ctx, domain.Notification{
			UserID:    uid,
			Type:      domain.NotificationInviteResolved,
			Title:     "Invite complete",
			Message:   "Both invitees accepted; a new conversation has been created.",
			RelatedID: thread.ID,
		})
		if err != nil {
			slogx.FromContext(ctx).Warn("resolution notification failed",
				slog.String("thread_id", thread.ID),
				slog.Any("error", err),
			)
		}
	}
}

// matchSlot checks that the caller is who the slot addresses. Email and
// phone slots require the matching contact to be verified, so holding a
// forwarded invite link is not enough to claim someone else's seat.
func matchSlot(sl domain.Slot, caller domain.User) error {
	switch sl.Channel {
	case domain.ChannelUsername:
		if sl.UserID != caller.ID {
			return ErrSlotMismatch
		}
	case domain.ChannelEmail:
		if caller.Email != sl.Value {
			return ErrSlotMismatch
		}
		if !caller.HasVerifiedEmail(sl.Value) {
			return ErrContactNotVerified
		}
	case domain.ChannelPhone:
		if caller.Phone != sl.Value {
			return ErrSlotMismatch
		}
		if !caller.HasVerifiedPhone(sl.Value) {
			return ErrContactNotVerified
		}
	default:
		return ErrInvalidRecipient
	}
	return nil
}

// Resend re-delivers the invite to one slot. Creator only, throttled per
// invite and slot.
func (s *InviteService) Resend(ctx context.Context, userID, code string, recipientNumber int) error {
	slot := domain.SlotIndex(recipientNumber)
	if slot < 0 {
		return ErrInvalidRecipient
	}

	inv, err := s.getInvite(ctx, code)
	if err != nil {
		return err
	}
	if inv.CreatedBy != userID {
		return ErrNotAuthorized
	}
	if inv.Resolved() {
		return ErrInviteResolved
	}
	if inv.Slots[slot].Accepted() {
		return ErrAlreadyAccepted
	}

	if !s.resendLimiter(code, slot).Allow() {
		return ErrResendThrottled
	}

	creator, err := s.Store.Users().GetUserByID(ctx, inv.CreatedBy)
	if err != nil {
		return err
	}
	s.notifySlot(ctx, creator, inv, slot)
	return nil
}

func (s *InviteService) resendLimiter(code string, slot int) *rate.Limiter {
	s.resendMu.Lock()
	defer s.resendMu.Unlock()

	if s.resend == nil {
		s.resend = make(map[string]*rate.Limiter)
	}
	key := fmt.Sprintf("%s/%d", code, slot)
	lim, ok := s.resend[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(resendInterval), resendBurst)
		s.resend[key] = lim
	}
	return lim
}

// InviteStatus is the externally visible lifecycle snapshot of an invite.
type InviteStatus struct {
	Code      string
	Accepted  [2]bool
	Resolved  bool
	ThreadID  string
	ExpiresAt time.Time
	IsExpired bool
}

// Status reports where an invite sits in its lifecycle. Anyone holding the
// code may ask; the code itself is the capability. Expired invites still
// return a snapshot so callers can tell "expired" apart from "never existed";
// only Accept and Resend refuse expired codes.
func (s *InviteService) Status(ctx context.Context, code string) (InviteStatus, error) {
	inv, err := s.Store.Invites().GetInviteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return InviteStatus{}, ErrInviteNotFound
		}
		return InviteStatus{}, err
	}
	return InviteStatus{
		Code:      inv.Code,
		Accepted:  [2]bool{inv.Slots[0].Accepted(), inv.Slots[1].Accepted()},
		Resolved:  inv.Resolved(),
		ThreadID:  inv.ThreadID,
		ExpiresAt: inv.ExpiresAt,
		IsExpired: inv.Expired(time.Now().UTC()),
	}, nil
}

// ListOpen returns unresolved, unexpired invites the user created or is
// addressed by, matching on user id, username and verified contacts.
func (s *InviteService) ListOpen(ctx context.Context, userID string) ([]domain.Invite, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.Store.Invites().ListOpenFor(ctx, userID, contact.Identities(u), time.Now().UTC())
}

// getInvite loads an invite and applies lazy expiry.
func (s *InviteService) getInvite(ctx context.Context, code string) (domain.Invite, error) {
	inv, err := s.Store.Invites().GetInviteByCode(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrInviteNotFound
		}
		return domain.Invite{}, err
	}
	if inv.Expired(time.Now().UTC()) {
		return domain.Invite{}, ErrInviteExpired
	}
	return inv, nil
}
