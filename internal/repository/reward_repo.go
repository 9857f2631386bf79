package repository

import (
	"context"
	"time"

	"chat_economy/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RewardRepository owns the append-only dollar ledger. Entries are never
// updated or deleted; the dollar balance is the sum over a user's entries.
type RewardRepository struct {
	db *pgxpool.Pool
}

func NewRewardRepository(db *pgxpool.Pool) *RewardRepository {
	return &RewardRepository{db: db}
}

// Append records one reward entry.
func (r *RewardRepository) Append(ctx context.Context, e *domain.ActivityReward) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO activity_rewards (user_id, type, amount, multiplier)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.UserID, e.Type, e.Amount, e.Multiplier,
	).Scan(&e.ID, &e.CreatedAt)
}

// AppendWithTx records one reward entry inside an existing transaction.
func (r *RewardRepository) AppendWithTx(ctx context.Context, tx pgx.Tx, e *domain.ActivityReward) error {
	return tx.QueryRow(ctx,
		`INSERT INTO activity_rewards (user_id, type, amount, multiplier)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		e.UserID, e.Type, e.Amount, e.Multiplier,
	).Scan(&e.ID, &e.CreatedAt)
}

// SumAmount returns the user's dollar balance: the sum of every entry,
// exchange debits included.
func (r *RewardRepository) SumAmount(ctx context.Context, userID int64) (float64, error) {
	var sum float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM activity_rewards WHERE user_id = $1`,
		userID,
	).Scan(&sum)
	return sum, err
}

// SumAmountWithTx is SumAmount inside an existing transaction, so an
// exchange can validate against a balance no concurrent writer can move.
func (r *RewardRepository) SumAmountWithTx(ctx context.Context, tx pgx.Tx, userID int64) (float64, error) {
	var sum float64
	err := tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM activity_rewards WHERE user_id = $1`,
		userID,
	).Scan(&sum)
	return sum, err
}

// WeeklyActivity aggregates the trailing window from the ledger. The counter
// store is never consulted here: salary settles against ground truth.
func (r *RewardRepository) WeeklyActivity(ctx context.Context, userID int64, since time.Time) (domain.WeeklyActivity, error) {
	var w domain.WeeklyActivity
	err := r.db.QueryRow(ctx,
		`SELECT
		    COUNT(*) FILTER (WHERE type = $2),
		    COUNT(*) FILTER (WHERE type = $3),
		    COUNT(DISTINCT date_trunc('day', created_at)) FILTER (WHERE type IN ($2, $3, $4, $5))
		 FROM activity_rewards
		 WHERE user_id = $1 AND created_at >= $6`,
		userID,
		domain.ActivityMessage, domain.ActivityReaction,
		domain.ActivityVoice, domain.ActivityDailyLogin,
		since,
	).Scan(&w.Messages, &w.Reactions, &w.ActiveDays)
	return w, err
}

// CountToday returns how many entries of the given type the user produced
// today (UTC). Used to rebuild quota state when the counter store is cold.
func (r *RewardRepository) CountToday(ctx context.Context, userID int64, kind domain.ActivityType) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM activity_rewards
		 WHERE user_id = $1 AND type = $2
		   AND created_at >= date_trunc('day', now() AT TIME ZONE 'utc')`,
		userID, kind,
	).Scan(&n)
	return n, err
}

// Recent returns the newest entries for a user.
func (r *RewardRepository) Recent(ctx context.Context, userID int64, limit int) ([]*domain.ActivityReward, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, amount, multiplier, created_at
		 FROM activity_rewards
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.ActivityReward
	for rows.Next() {
		var e domain.ActivityReward
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.Amount, &e.Multiplier, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}
