package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tetherchat/tether/internal/social/domain"
)

type relationshipsRepo struct {
	q querier
}

const relationshipColumns = `id, pair_lo, pair_hi, requester_id, friends, created_at, accepted_at`

func (r *relationshipsRepo) CreateRelationship(ctx context.Context, rel domain.Relationship) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO relationships (id, pair_lo, pair_hi, requester_id, friends, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		rel.ID,
		rel.PairLo,
		rel.PairHi,
		rel.RequesterID,
		toMillis(rel.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *relationshipsRepo) GetRelationshipByID(ctx context.Context, id string) (domain.Relationship, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+relationshipColumns+` FROM relationships WHERE id = ?`, id)
	rel, err := scanRelationship(row)
	if err != nil {
		return domain.Relationship{}, mapNotFound(err)
	}
	return rel, nil
}

func (r *relationshipsRepo) GetRelationshipByPair(ctx context.Context, userA, userB string) (domain.Relationship, error) {
	lo, hi := domain.OrderPair(userA, userB)
	row := r.q.QueryRowContext(ctx,
		`SELECT `+relationshipColumns+` FROM relationships WHERE pair_lo = ? AND pair_hi = ?`, lo, hi)
	rel, err := scanRelationship(row)
	if err != nil {
		return domain.Relationship{}, mapNotFound(err)
	}
	return rel, nil
}

// AcceptRelationship is a guarded pending->friends transition: a consumed or
// deleted request affects zero rows and surfaces as ErrNotFound.
func (r *relationshipsRepo) AcceptRelationship(ctx context.Context, id string, at time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE relationships SET friends = 1, accepted_at = ? WHERE id = ? AND friends = 0`,
		toMillis(at),
		id,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *relationshipsRepo) DeleteRelationship(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *relationshipsRepo) DeleteFriendship(ctx context.Context, userA, userB string) error {
	lo, hi := domain.OrderPair(userA, userB)
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM relationships WHERE pair_lo = ? AND pair_hi = ? AND friends = 1`, lo, hi)
	return err
}

func (r *relationshipsRepo) ListPendingFor(ctx context.Context, userID string) ([]domain.Relationship, error) {
	return r.list(ctx,
		`SELECT `+relationshipColumns+` FROM relationships
		 WHERE (pair_lo = ? OR pair_hi = ?) AND friends = 0
		 ORDER BY created_at DESC`,
		userID, userID)
}

func (r *relationshipsRepo) ListFriendsOf(ctx context.Context, userID string) ([]domain.Relationship, error) {
	return r.list(ctx,
		`SELECT `+relationshipColumns+` FROM relationships
		 WHERE (pair_lo = ? OR pair_hi = ?) AND friends = 1
		 ORDER BY accepted_at DESC`,
		userID, userID)
}

func (r *relationshipsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Relationship, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rels []domain.Relationship
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, err
		}
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}

func scanRelationship(row interface{ Scan(...any) error }) (domain.Relationship, error) {
	var (
		rel        domain.Relationship
		friends    int
		createdAt  int64
		acceptedAt sql.NullInt64
	)
	err := row.Scan(
		&rel.ID,
		&rel.PairLo,
		&rel.PairHi,
		&rel.RequesterID,
		&friends,
		&createdAt,
		&acceptedAt,
	)
	if err != nil {
		return domain.Relationship{}, err
	}
	rel.Friends = friends != 0
	rel.CreatedAt = fromMillis(createdAt)
	rel.AcceptedAt = fromMillisPtr(acceptedAt)
	return rel, nil
}
