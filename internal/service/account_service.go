package service

import (
	"context"
	"errors"
	"fmt"

	"chat_economy/internal/config"
	"chat_economy/internal/domain"
	"chat_economy/internal/logger"
	"chat_economy/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AccountService handles registration and profile reads.
type AccountService struct {
	db           *pgxpool.Pool
	users        *repository.UserRepository
	machines     *repository.MachineRepository
	transactions *repository.TransactionRepository
	cfg          config.EconomyConfig
}

func NewAccountService(db *pgxpool.Pool, cfg config.EconomyConfig) *AccountService {
	return &AccountService{
		db:           db,
		users:        repository.NewUserRepository(db),
		machines:     repository.NewMachineRepository(db),
		transactions: repository.NewTransactionRepository(db),
		cfg:          cfg,
	}
}

// Register creates the user if needed and pays the one-time registration
// grant: starting tokens plus a starter machine. Re-registering is a no-op
// for the grant; the flag flip and the payout share one transaction.
func (s *AccountService) Register(ctx context.Context, externalID string) (*domain.User, error) {
	user, err := s.users.Ensure(ctx, externalID)
	if err != nil {
		logger.Error("register: ensure user failed", "user", externalID, "error", err)
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		logger.Error("register: begin tx failed", "user", externalID, "error", err)
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	first, err := s.users.MarkRegistrationBonusPaid(ctx, tx, user.ID)
	if err != nil {
		logger.Error("register: bonus flag update failed", "user", externalID, "error", err)
		return nil, err
	}
	if !first {
		return user, nil
	}

	if _, err := s.users.AddTokensWithTx(ctx, tx, user.ID, s.cfg.RegistrationBonus); err != nil {
		logger.Error("register: bonus credit failed", "user", externalID, "error", err)
		return nil, err
	}

	starter := &domain.Machine{
		UserID:     user.ID,
		Type:       s.cfg.StarterMachineType,
		Level:      1,
		Efficiency: 100,
		Durability: 100,
	}
	if err := s.machines.CreateWithTx(ctx, tx, starter); err != nil {
		logger.Error("register: starter machine failed", "user", externalID, "error", err)
		return nil, err
	}

	audit := &domain.Transaction{
		UserID:      user.ID,
		Type:        domain.TxRegistrationBonus,
		Amount:      s.cfg.RegistrationBonus,
		Description: fmt.Sprintf("Registration bonus: %d tokens and a %s", s.cfg.RegistrationBonus, s.cfg.StarterMachineType),
	}
	if err := s.transactions.CreateWithTx(ctx, tx, audit); err != nil {
		logger.Error("register: audit entry failed", "user", externalID, "error", err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("register: commit failed", "user", externalID, "error", err)
		return nil, err
	}

	return s.users.GetByID(ctx, user.ID)
}

// Profile returns the stored user row.
func (s *AccountService) Profile(ctx context.Context, externalID string) (*domain.User, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// TransactionHistory returns recent audit entries.
func (s *AccountService) TransactionHistory(ctx context.Context, externalID string, limit int) ([]*domain.Transaction, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.transactions.GetByUserID(ctx, user.ID, limit)
}
