package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/store"
	"github.com/tetherchat/tether/pkg/idx"
	"github.com/tetherchat/tether/pkg/slogx"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Mailer sends email to external addresses. Implementations must be safe for
// concurrent use.
type Mailer interface {
	SendMail(ctx context.Context, to, subject, body string) error
}

// Texter sends SMS to external phone numbers.
type Texter interface {
	SendSMS(ctx context.Context, to, body string) error
}

// LogMailer is the default Mailer: it records the intent in the log and
// pretends success. Wire a real provider in production.
type LogMailer struct{}

func (LogMailer) SendMail(ctx context.Context, to, subject, _ string) error {
	slogx.FromContext(ctx).Info("email notification (log only)",
		slog.String("to", to),
		slog.String("subject", subject),
	)
	return nil
}

// LogTexter is the default Texter counterpart to LogMailer.
type LogTexter struct{}

func (LogTexter) SendSMS(ctx context.Context, to, _ string) error {
	slogx.FromContext(ctx).Info("sms notification (log only)",
		slog.String("to", to),
	)
	return nil
}

// NotificationDispatcher persists notifications and fans them out to the
// right delivery channel. The durable row is written first; external email
// and SMS delivery is best effort and never fails the triggering operation.
type NotificationDispatcher struct {
	Store  store.Store
	Mailer Mailer
	Texter Texter
}

// Dispatch records and delivers one notification. The caller fills Type,
// Title, Message and either UserID (registered recipient, in-app delivery)
// or Method+Target (external email/sms intent). ID and CreatedAt are
// assigned here.
func (d *NotificationDispatcher) Dispatch(ctx context.Context, n domain.Notification) (domain.NotificationResult, error) {
	log := slogx.FromContext(ctx)

	n.ID = idx.New().String()
	n.CreatedAt = time.Now().UTC()
	if n.Method == "" {
		n.Method = domain.DeliveryInApp
	}

	if err := d.Store.Notifications().CreateNotification(ctx, n); err != nil {
		log.Error("failed to persist notification",
			slog.String("type", string(n.Type)),
			slog.Any("error", err),
		)
		return domain.NotificationResult{}, err
	}

	// External delivery happens after the durable write so a provider
	// outage cannot lose the record.
	switch n.Method {
	case domain.DeliveryEmail:
		if err := d.mailer().SendMail(ctx, n.Target, n.Title, n.Message); err != nil {
			log.Warn("email delivery failed",
				slog.String("notification_id", n.ID),
				slog.Any("error", err),
			)
			return domain.NotificationResult{Sent: false, Method: n.Method}, nil
		}
	case domain.DeliverySMS:
		if err := d.texter().SendSMS(ctx, n.Target, n.Message); err != nil {
			log.Warn("sms delivery failed",
				slog.String("notification_id", n.ID),
				slog.Any("error", err),
			)
			return domain.NotificationResult{Sent: false, Method: n.Method}, nil
		}
	}

	return domain.NotificationResult{Sent: true, Method: n.Method}, nil
}

// List returns a user's notifications, newest first.
func (d *NotificationDispatcher) List(ctx context.Context, userID string, limit int, unreadOnly bool) ([]domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return d.Store.Notifications().ListNotificationsFor(ctx, userID, limit, unreadOnly)
}

// UnreadCount returns the number of unread notifications for a user.
func (d *NotificationDispatcher) UnreadCount(ctx context.Context, userID string) (int, error) {
	return d.Store.Notifications().CountUnread(ctx, userID)
}

// MarkRead flips the given notifications to read. Ids owned by other users
// are silently ignored.
func (d *NotificationDispatcher) MarkRead(ctx context.Context, userID string, ids []string) error {
	return d.Store.Notifications().MarkNotificationsRead(ctx, userID, ids)
}

// MarkAllRead flips every unread notification for the user.
func (d *NotificationDispatcher) MarkAllRead(ctx context.Context, userID string) error {
	return d.Store.Notifications().MarkAllNotificationsRead(ctx, userID)
}

// Delete removes one of the user's notifications.
func (d *NotificationDispatcher) Delete(ctx context.Context, userID, id string) error {
	err := d.Store.Notifications().DeleteNotification(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

func (d *NotificationDispatcher) mailer() Mailer {
	if d.Mailer != nil {
		return d.Mailer
	}
	return LogMailer{}
}

func (d *NotificationDispatcher) texter() Texter {
	if d.Texter != nil {
		return d.Texter
	}
	return LogTexter{}
}
