package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/store"
)

type invitesRepo struct {
	q querier
}

const inviteColumns = `id, code, created_by,
	slot1_channel, slot1_value, slot1_user_id, slot1_accepted_at,
	slot2_channel, slot2_value, slot2_user_id, slot2_accepted_at,
	thread_id, created_at, expires_at, updated_at`

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO invites (`+inviteColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.Code,
		inv.CreatedBy,
		string(inv.Slots[0].Channel),
		inv.Slots[0].Value,
		mapStringNull(inv.Slots[0].UserID),
		toMillisPtr(inv.Slots[0].AcceptedAt),
		string(inv.Slots[1].Channel),
		inv.Slots[1].Value,
		mapStringNull(inv.Slots[1].UserID),
		toMillisPtr(inv.Slots[1].AcceptedAt),
		mapStringNull(inv.ThreadID),
		toMillis(inv.CreatedAt),
		toMillis(inv.ExpiresAt),
		toMillis(inv.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByCode(ctx context.Context, code string) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE code = ?`, code)
	inv, err := scanInvite(row)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	return inv, nil
}

// AcceptSlot stamps one slot's acceptance with a guarded update. A second
// acceptance of the same slot affects zero rows; the follow-up existence
// check decides between "already accepted" and "no such invite".
func (r *invitesRepo) AcceptSlot(ctx context.Context, code string, slot int, userID string, at time.Time) error {
	if slot != 0 && slot != 1 {
		return fmt.Errorf("sqlite: invalid slot %d", slot)
	}
	col := "slot1"
	if slot == 1 {
		col = "slot2"
	}

	res, err := r.q.ExecContext(ctx, fmt.Sprintf(
		`UPDATE invites
		 SET %[1]s_user_id = ?, %[1]s_accepted_at = ?, updated_at = ?
		 WHERE code = ? AND %[1]s_accepted_at IS NULL`, col),
		userID,
		toMillis(at),
		toMillis(at),
		code,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists int
	err = r.q.QueryRowContext(ctx, `SELECT 1 FROM invites WHERE code = ?`, code).Scan(&exists)
	if err == sql.ErrNoRows {
		return store.ErrNotFound
	}
	if err != nil {
		return err
	}
	return store.ErrAlreadyExists
}

// MarkResolved is the exactly-once resolution transition. The WHERE clause
// only matches while thread_id is still null and both slots are accepted, so
// under concurrent dual acceptance exactly one caller sees true.
func (r *invitesRepo) MarkResolved(ctx context.Context, code string, threadID string, at time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE invites
		 SET thread_id = ?, updated_at = ?
		 WHERE code = ?
		   AND thread_id IS NULL
		   AND slot1_accepted_at IS NOT NULL
		   AND slot2_accepted_at IS NOT NULL`,
		threadID,
		toMillis(at),
		code,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *invitesRepo) ListOpenFor(ctx context.Context, userID string, identities []string, now time.Time) ([]domain.Invite, error) {
	args := []any{userID}
	match := `created_by = ?`
	if len(identities) > 0 {
		ph := strings.Repeat("?, ", len(identities)-1) + "?"
		match += ` OR slot1_user_id = ? OR slot2_user_id = ?` +
			` OR slot1_value IN (` + ph + `) OR slot2_value IN (` + ph + `)`
		args = append(args, userID, userID)
		for i := 0; i < 2; i++ {
			for _, v := range identities {
				args = append(args, v)
			}
		}
	}
	args = append(args, toMillis(now))

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+inviteColumns+` FROM invites
		 WHERE (`+match+`)
		   AND thread_id IS NULL
		   AND expires_at > ?
		 ORDER BY created_at DESC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context, now time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM invites WHERE thread_id IS NULL AND expires_at <= ?`,
		toMillis(now))
	return err
}

func scanInvite(row interface{ Scan(...any) error }) (domain.Invite, error) {
	var (
		inv                  domain.Invite
		s1ch, s2ch           string
		s1uid, s2uid         sql.NullString
		s1at, s2at           sql.NullInt64
		threadID             sql.NullString
		created, expires, up int64
	)
	err := row.Scan(
		&inv.ID,
		&inv.Code,
		&inv.CreatedBy,
		&s1ch,
		&inv.Slots[0].Value,
		&s1uid,
		&s1at,
		&s2ch,
		&inv.Slots[1].Value,
		&s2uid,
		&s2at,
		&threadID,
		&created,
		&expires,
		&up,
	)
	if err != nil {
		return domain.Invite{}, err
	}
	inv.Slots[0].Channel = domain.Channel(s1ch)
	inv.Slots[0].UserID = mapNullString(s1uid)
	inv.Slots[0].AcceptedAt = fromMillisPtr(s1at)
	inv.Slots[1].Channel = domain.Channel(s2ch)
	inv.Slots[1].UserID = mapNullString(s2uid)
	inv.Slots[1].AcceptedAt = fromMillisPtr(s2at)
	inv.ThreadID = mapNullString(threadID)
	inv.CreatedAt = fromMillis(created)
	inv.ExpiresAt = fromMillis(expires)
	inv.UpdatedAt = fromMillis(up)
	return inv, nil
}
