package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type BonusRepo struct {
	db *sql.DB
}

func NewBonusRepo(db *sql.DB) *BonusRepo {
	return &BonusRepo{db: db}
}

func (r *BonusRepo) Insert(ctx context.Context, b XPBonus) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO xp_bonuses (source, detail, amount, week_start, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, b.Source, b.Detail, b.Amount, b.WeekStart, b.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("bonus insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("bonus last insert id: %w", err)
	}
	return id, nil
}

// InsertBonusTx inserts a bonus inside an open transaction. Used by the
// quest-claim dual-write so claim and bonus commit or roll back together.
func InsertBonusTx(ctx context.Context, tx *sql.Tx, b XPBonus) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		INSERT INTO xp_bonuses (source, detail, amount, week_start, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, b.Source, b.Detail, b.Amount, b.WeekStart, b.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("bonus insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("bonus last insert id: %w", err)
	}
	return id, nil
}

func (r *BonusRepo) ListByWeek(ctx context.Context, weekStart string) ([]XPBonus, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source, detail, amount, week_start, created_at
		FROM xp_bonuses
		WHERE week_start = ?
		ORDER BY id ASC
	`, weekStart)
	if err != nil {
		return nil, fmt.Errorf("bonus week list: %w", err)
	}
	return collectBonuses(rows)
}

func (r *BonusRepo) ListAll(ctx context.Context) ([]XPBonus, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source, detail, amount, week_start, created_at
		FROM xp_bonuses
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("bonus list: %w", err)
	}
	return collectBonuses(rows)
}

func collectBonuses(rows *sql.Rows) ([]XPBonus, error) {
	defer rows.Close()
	var out []XPBonus
	for rows.Next() {
		var b XPBonus
		var created time.Time
		if err := rows.Scan(&b.ID, &b.Source, &b.Detail, &b.Amount, &b.WeekStart, &created); err != nil {
			return nil, fmt.Errorf("bonus scan: %w", err)
		}
		b.CreatedAt = created
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bonus rows: %w", err)
	}
	return out, nil
}
