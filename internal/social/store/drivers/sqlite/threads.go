package sqlite

import (
	"context"

	"github.com/tetherchat/tether/internal/social/domain"
)

type threadsRepo struct {
	q querier
}

func (r *threadsRepo) CreateThread(ctx context.Context, t domain.Thread) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO threads (id, created_by, created_at) VALUES (?, ?, ?)`,
		t.ID,
		t.CreatedBy,
		toMillis(t.CreatedAt),
	)
	if err != nil {
		return mapConstraint(err)
	}

	for _, uid := range t.Participants {
		_, err := r.q.ExecContext(ctx,
			`INSERT INTO thread_participants (thread_id, user_id, joined_at) VALUES (?, ?, ?)`,
			t.ID,
			uid,
			toMillis(t.CreatedAt),
		)
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *threadsRepo) GetThreadByID(ctx context.Context, id string) (domain.Thread, error) {
	var (
		t       domain.Thread
		created int64
	)
	err := r.q.QueryRowContext(ctx,
		`SELECT id, created_by, created_at FROM threads WHERE id = ?`, id).
		Scan(&t.ID, &t.CreatedBy, &created)
	if err != nil {
		return domain.Thread{}, mapNotFound(err)
	}
	t.CreatedAt = fromMillis(created)

	rows, err := r.q.QueryContext(ctx,
		`SELECT user_id FROM thread_participants WHERE thread_id = ? ORDER BY user_id`, id)
	if err != nil {
		return domain.Thread{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var uid string
		if err := rows.Scan(&uid); err != nil {
			return domain.Thread{}, err
		}
		t.Participants = append(t.Participants, uid)
	}
	return t, rows.Err()
}
