package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tetherchat/tether/internal/social/domain"
	"github.com/tetherchat/tether/internal/social/store"
)

type usersRepo struct {
	q querier
}

const userColumns = `id, username, password_hash, email, phone,
	email_verified_at, phone_verified_at, otp_secret, created_at, updated_at`

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := toMillis(u.CreatedAt)
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, email, phone, otp_secret, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Username,
		u.PasswordHash,
		mapStringNull(u.Email),
		mapStringNull(u.Phone),
		u.OTPSecret,
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getUser(ctx, `WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUser(ctx, `WHERE username = ?`, username)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getUser(ctx, `WHERE email = ?`, email)
}

func (r *usersRepo) GetUserByPhone(ctx context.Context, phone string) (domain.User, error) {
	return r.getUser(ctx, `WHERE phone = ?`, phone)
}

func (r *usersRepo) getUser(ctx context.Context, where string, args ...any) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users `+where, args...)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) SearchUsers(ctx context.Context, query string, limit int) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE username LIKE ? ESCAPE '\'
		 ORDER BY username
		 LIMIT ?`,
		"%"+escapeLike(query)+"%",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) UpdateContact(ctx context.Context, userID string, channel domain.Channel, value string) error {
	var column, verifiedColumn string
	switch channel {
	case domain.ChannelEmail:
		column, verifiedColumn = "email", "email_verified_at"
	case domain.ChannelPhone:
		column, verifiedColumn = "phone", "phone_verified_at"
	default:
		return fmt.Errorf("sqlite: channel %q has no contact column", channel)
	}

	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET `+column+` = ?, `+verifiedColumn+` = NULL, updated_at = ? WHERE id = ?`,
		mapStringNull(value),
		toMillis(time.Now()),
		userID,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireRow(res)
}

func (r *usersRepo) MarkContactVerified(ctx context.Context, userID string, channel domain.Channel, at time.Time) error {
	var verifiedColumn string
	switch channel {
	case domain.ChannelEmail:
		verifiedColumn = "email_verified_at"
	case domain.ChannelPhone:
		verifiedColumn = "phone_verified_at"
	default:
		return fmt.Errorf("sqlite: channel %q has no contact column", channel)
	}

	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET `+verifiedColumn+` = ?, updated_at = ? WHERE id = ?`,
		toMillis(at),
		toMillis(at),
		userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) SetOTPSecret(ctx context.Context, userID string, secret string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE users SET otp_secret = ?, updated_at = ? WHERE id = ?`,
		secret,
		toMillis(time.Now()),
		userID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var (
		u               domain.User
		email, phone    sql.NullString
		emailVerifiedAt sql.NullInt64
		phoneVerifiedAt sql.NullInt64
		createdAt       int64
		updatedAt       int64
	)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&email,
		&phone,
		&emailVerifiedAt,
		&phoneVerifiedAt,
		&u.OTPSecret,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Email = mapNullString(email)
	u.Phone = mapNullString(phone)
	u.EmailVerifiedAt = fromMillisPtr(emailVerifiedAt)
	u.PhoneVerifiedAt = fromMillisPtr(phoneVerifiedAt)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
