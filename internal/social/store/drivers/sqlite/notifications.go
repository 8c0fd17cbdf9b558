package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/tetherchat/tether/internal/social/domain"
)

type notificationsRepo struct {
	q querier
}

const notificationColumns = `id, user_id, type, title, message, from_user_id, related_id, method, target, is_read, created_at`

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	read := 0
	if n.Read {
		read = 1
	}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO notifications (`+notificationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID,
		mapStringNull(n.UserID),
		string(n.Type),
		n.Title,
		n.Message,
		mapStringNull(n.FromUserID),
		mapStringNull(n.RelatedID),
		string(n.Method),
		n.Target,
		read,
		toMillis(n.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *notificationsRepo) ListNotificationsFor(ctx context.Context, userID string, limit int, unreadOnly bool) ([]domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND is_read = 0`
	}
	query += ` ORDER BY created_at DESC LIMIT ?`

	rows, err := r.q.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ns []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		ns = append(ns, n)
	}
	return ns, rows.Err()
}

func (r *notificationsRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID).
		Scan(&n)
	return n, err
}

func (r *notificationsRepo) MarkNotificationsRead(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, userID)
	for _, id := range ids {
		args = append(args, id)
	}
	ph := strings.Repeat("?, ", len(ids)-1) + "?"

	// Scoping by user_id silently skips ids owned by someone else.
	_, err := r.q.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND id IN (`+ph+`)`,
		args...)
	return err
}

func (r *notificationsRepo) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ? AND is_read = 0`, userID)
	return err
}

func (r *notificationsRepo) DeleteNotification(ctx context.Context, userID string, id string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *notificationsRepo) DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM notifications WHERE is_read = 1 AND created_at < ?`,
		toMillis(cutoff))
	return err
}

func scanNotification(row interface{ Scan(...any) error }) (domain.Notification, error) {
	var (
		n                 domain.Notification
		typ, method       string
		userID, from, rel sql.NullString
		read              int
		created           int64
	)
	err := row.Scan(
		&n.ID,
		&userID,
		&typ,
		&n.Title,
		&n.Message,
		&from,
		&rel,
		&method,
		&n.Target,
		&read,
		&created,
	)
	if err != nil {
		return domain.Notification{}, err
	}
	n.UserID = mapNullString(userID)
	n.Type = domain.NotificationType(typ)
	n.Method = domain.DeliveryMethod(method)
	n.FromUserID = mapNullString(from)
	n.RelatedID = mapNullString(rel)
	n.Read = read != 0
	n.CreatedAt = fromMillis(created)
	return n, nil
}
