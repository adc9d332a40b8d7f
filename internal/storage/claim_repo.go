package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type ClaimRepo struct {
	db *sql.DB
}

func NewClaimRepo(db *sql.DB) *ClaimRepo {
	return &ClaimRepo{db: db}
}

func (r *ClaimRepo) Get(ctx context.Context, questID, weekStart string) (*QuestClaim, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, quest_id, week_start, reward_xp, claimed_at
		FROM quest_claims
		WHERE quest_id = ? AND week_start = ?
	`, questID, weekStart)

	var c QuestClaim
	if err := row.Scan(&c.ID, &c.QuestID, &c.WeekStart, &c.RewardXP, &c.ClaimedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("claim get: %w", err)
	}
	return &c, nil
}

func (r *ClaimRepo) ListByWeek(ctx context.Context, weekStart string) ([]QuestClaim, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, quest_id, week_start, reward_xp, claimed_at
		FROM quest_claims
		WHERE week_start = ?
		ORDER BY id ASC
	`, weekStart)
	if err != nil {
		return nil, fmt.Errorf("claim week list: %w", err)
	}
	defer rows.Close()

	var out []QuestClaim
	for rows.Next() {
		var c QuestClaim
		if err := rows.Scan(&c.ID, &c.QuestID, &c.WeekStart, &c.RewardXP, &c.ClaimedAt); err != nil {
			return nil, fmt.Errorf("claim scan: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("claim rows: %w", err)
	}
	return out, nil
}

func (r *ClaimRepo) CountAll(ctx context.Context) (int, error) {
	row := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quest_claims`)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("claim count: %w", err)
	}
	return n, nil
}

// InsertClaimTx inserts a claim inside an open transaction. The unique
// (quest_id, week_start) index makes a duplicate insert fail rather than
// double-grant.
func InsertClaimTx(ctx context.Context, tx *sql.Tx, c QuestClaim) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO quest_claims (quest_id, week_start, reward_xp, claimed_at)
		VALUES (?, ?, ?, ?)
	`, c.QuestID, c.WeekStart, c.RewardXP, c.ClaimedAt)
	if err != nil {
		return 0, fmt.Errorf("claim insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("claim last insert id: %w", err)
	}
	return id, nil
}
