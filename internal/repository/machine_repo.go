package repository

import (
	"context"
	"errors"

	"chat_economy/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrMachineNotFound = errors.New("machine not found")

type MachineRepository struct {
	db *pgxpool.Pool
}

func NewMachineRepository(db *pgxpool.Pool) *MachineRepository {
	return &MachineRepository{db: db}
}

func (r *MachineRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Machine, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, level, efficiency, durability, created_at
		 FROM machines
		 WHERE user_id = $1
		 ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Machine
	for rows.Next() {
		var m domain.Machine
		if err := rows.Scan(&m.ID, &m.UserID, &m.Type, &m.Level, &m.Efficiency, &m.Durability, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}

// GetForUpdate locks the machine row for the duration of the transaction.
func (r *MachineRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, machineID int64) (*domain.Machine, error) {
	var m domain.Machine
	err := tx.QueryRow(ctx,
		`SELECT id, user_id, type, level, efficiency, durability, created_at
		 FROM machines WHERE id = $1 FOR UPDATE`,
		machineID,
	).Scan(&m.ID, &m.UserID, &m.Type, &m.Level, &m.Efficiency, &m.Durability, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMachineNotFound
		}
		return nil, err
	}
	return &m, nil
}

// CountByUserWithTx counts the user's machines inside a transaction. The
// sale path locks the user row first, so the count cannot change under it.
func (r *MachineRepository) CountByUserWithTx(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	var n int64
	err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM machines WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

// CreateWithTx inserts a machine inside an existing transaction.
func (r *MachineRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, m *domain.Machine) error {
	return tx.QueryRow(ctx,
		`INSERT INTO machines (user_id, type, level, efficiency, durability)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		m.UserID, m.Type, m.Level, m.Efficiency, m.Durability,
	).Scan(&m.ID, &m.CreatedAt)
}

// DeleteWithTx removes a machine inside an existing transaction.
func (r *MachineRepository) DeleteWithTx(ctx context.Context, tx pgx.Tx, machineID int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM machines WHERE id = $1`, machineID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrMachineNotFound
	}
	return nil
}
