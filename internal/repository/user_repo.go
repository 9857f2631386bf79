package repository

import (
	"context"
	"errors"

	"chat_economy/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, external_id, tokens, energy, level, location,
	login_streak, last_login_date, last_salary_claim, created_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.ExternalID,
		&u.Tokens,
		&u.Energy,
		&u.Level,
		&u.Location,
		&u.LoginStreak,
		&u.LastLoginDate,
		&u.LastSalaryAt,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE external_id = $1`, externalID))
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// Ensure creates the user on first observed activity. The upsert makes
// concurrent first-events from the same external id safe: both callers get
// the same row back.
func (r *UserRepository) Ensure(ctx context.Context, externalID string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`INSERT INTO users (external_id)
		 VALUES ($1)
		 ON CONFLICT (external_id) DO UPDATE SET external_id = EXCLUDED.external_id
		 RETURNING `+userColumns,
		externalID))
}

// AddTokensWithTx adjusts the token balance inside an existing transaction.
// A negative delta that would overdraw matches no row.
func (r *UserRepository) AddTokensWithTx(ctx context.Context, tx pgx.Tx, userID int64, delta int64) (int64, error) {
	var newBalance int64
	err := tx.QueryRow(ctx,
		`UPDATE users SET tokens = tokens + $1 WHERE id = $2 AND tokens + $1 >= 0 RETURNING tokens`,
		delta, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return 0, ErrUserNotFound
			}
			return 0, ErrInsufficientTokens
		}
		return 0, err
	}
	return newBalance, nil
}

var ErrInsufficientTokens = errors.New("insufficient tokens")

// ClaimSalaryMarker advances last_salary_claim if and only if the previous
// claim is older than the period. Returns false when another claim already
// won the race; the check and the set are one statement, so two concurrent
// claims cannot both pass.
func (r *UserRepository) ClaimSalaryMarker(ctx context.Context, tx pgx.Tx, userID int64, periodSeconds int64) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE users SET last_salary_claim = now()
		 WHERE id = $1
		   AND (last_salary_claim IS NULL
		        OR last_salary_claim <= now() - make_interval(secs => $2))`,
		userID, periodSeconds,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// MarkDailyLogin advances last_login_date to today and updates the streak,
// inside an existing transaction so the caller can tie the marker to the
// payout. Returns the new streak and false when today's login was already
// recorded.
func (r *UserRepository) MarkDailyLogin(ctx context.Context, tx pgx.Tx, userID int64) (int, bool, error) {
	var streak int
	err := tx.QueryRow(ctx,
		`UPDATE users
		 SET login_streak = CASE
		         WHEN last_login_date = CURRENT_DATE - 1 THEN login_streak + 1
		         ELSE 1
		     END,
		     last_login_date = CURRENT_DATE
		 WHERE id = $1
		   AND (last_login_date IS NULL OR last_login_date < CURRENT_DATE)
		 RETURNING login_streak`,
		userID,
	).Scan(&streak)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return streak, true, nil
}

// MarkRegistrationBonusPaid flips the one-time bonus flag. Returns false when
// the bonus was already paid out.
func (r *UserRepository) MarkRegistrationBonusPaid(ctx context.Context, tx pgx.Tx, userID int64) (bool, error) {
	tag, err := tx.Exec(ctx,
		`UPDATE users SET registration_bonus_paid = TRUE
		 WHERE id = $1 AND registration_bonus_paid = FALSE`,
		userID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
