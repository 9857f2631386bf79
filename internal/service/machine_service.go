package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chat_economy/internal/config"
	"chat_economy/internal/domain"
	"chat_economy/internal/logger"
	"chat_economy/internal/metrics"
	"chat_economy/internal/pricing"
	"chat_economy/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MachineService handles machine purchase and resale. Every sale is atomic:
// the asset row disappears, the tokens arrive and the audit record lands in
// one database transaction, or none of it happens.
type MachineService struct {
	db           *pgxpool.Pool
	users        *repository.UserRepository
	machines     *repository.MachineRepository
	transactions *repository.TransactionRepository
	cfg          config.EconomyConfig
	events       EventPublisher
}

func NewMachineService(db *pgxpool.Pool, cfg config.EconomyConfig, events EventPublisher) *MachineService {
	return &MachineService{
		db:           db,
		users:        repository.NewUserRepository(db),
		machines:     repository.NewMachineRepository(db),
		transactions: repository.NewTransactionRepository(db),
		cfg:          cfg,
		events:       events,
	}
}

// List returns the user's machines.
func (s *MachineService) List(ctx context.Context, externalID string) ([]*domain.Machine, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.machines.ListByUser(ctx, user.ID)
}

// Quote computes the current resale price of a machine without selling it.
func (s *MachineService) Quote(ctx context.Context, externalID string, machineID int64) (int64, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	machines, err := s.machines.ListByUser(ctx, user.ID)
	if err != nil {
		return 0, err
	}
	for _, m := range machines {
		if m.ID == machineID {
			return pricing.SellPrice(s.cfg.MachinePrices[m.Type], m.AgeDays(time.Now()), m.Durability), nil
		}
	}
	return 0, ErrMachineNotFound
}

// Buy purchases a machine of the given catalog type with tokens.
func (s *MachineService) Buy(ctx context.Context, externalID, machineType string) (*domain.Machine, error) {
	price, ok := s.cfg.MachinePrices[machineType]
	if !ok {
		return nil, ErrUnknownMachineType
	}

	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		logger.Error("machine buy: begin tx failed", "user", externalID, "error", err)
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := s.users.AddTokensWithTx(ctx, tx, user.ID, -price); err != nil {
		if errors.Is(err, repository.ErrInsufficientTokens) {
			return nil, ErrInsufficientFunds
		}
		logger.Error("machine buy: token debit failed", "user", externalID, "error", err)
		return nil, err
	}

	machine := &domain.Machine{
		UserID:     user.ID,
		Type:       machineType,
		Level:      1,
		Efficiency: 100,
		Durability: 100,
	}
	if err := s.machines.CreateWithTx(ctx, tx, machine); err != nil {
		logger.Error("machine buy: insert failed", "user", externalID, "error", err)
		return nil, err
	}

	audit := &domain.Transaction{
		UserID:      user.ID,
		Type:        domain.TxMachinePurchase,
		Amount:      -price,
		Description: fmt.Sprintf("Bought %s for %d tokens", machineType, price),
		Meta:        map[string]interface{}{"machine_id": machine.ID, "machine_type": machineType},
	}
	if err := s.transactions.CreateWithTx(ctx, tx, audit); err != nil {
		logger.Error("machine buy: audit entry failed", "user", externalID, "error", err)
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("machine buy: commit failed", "user", externalID, "error", err)
		return nil, err
	}

	publish(s.events, EventMachineBought, map[string]any{
		"user_id": externalID,
		"type":    machineType,
		"price":   price,
	})
	return machine, nil
}

// Sell removes a machine and credits its residual value. Refused when it is
// the user's last machine.
func (s *MachineService) Sell(ctx context.Context, externalID string, machineID int64) (int64, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		logger.Error("machine sell: begin tx failed", "user", externalID, "error", err)
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Lock the owner row first so two concurrent sales of the user's last
	// two machines serialize and the count check stays valid.
	if _, err := tx.Exec(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, user.ID); err != nil {
		logger.Error("machine sell: user lock failed", "user", externalID, "error", err)
		return 0, err
	}

	machine, err := s.machines.GetForUpdate(ctx, tx, machineID)
	if err != nil {
		if errors.Is(err, repository.ErrMachineNotFound) {
			return 0, ErrMachineNotFound
		}
		logger.Error("machine sell: lookup failed", "user", externalID, "machine", machineID, "error", err)
		return 0, err
	}
	if machine.UserID != user.ID {
		return 0, ErrMachineNotFound
	}

	count, err := s.machines.CountByUserWithTx(ctx, tx, user.ID)
	if err != nil {
		logger.Error("machine sell: count failed", "user", externalID, "error", err)
		return 0, err
	}
	if count <= 1 {
		return 0, ErrLastMachineProtected
	}

	price := pricing.SellPrice(s.cfg.MachinePrices[machine.Type], machine.AgeDays(time.Now()), machine.Durability)

	if err := s.machines.DeleteWithTx(ctx, tx, machine.ID); err != nil {
		logger.Error("machine sell: delete failed", "user", externalID, "machine", machineID, "error", err)
		return 0, err
	}

	if _, err := s.users.AddTokensWithTx(ctx, tx, user.ID, price); err != nil {
		logger.Error("machine sell: token credit failed", "user", externalID, "error", err)
		return 0, err
	}

	audit := &domain.Transaction{
		UserID:      user.ID,
		Type:        domain.TxMachineSale,
		Amount:      price,
		Description: fmt.Sprintf("Sold %s for %d tokens", machine.Type, price),
		Meta: map[string]interface{}{
			"machine_id":   machine.ID,
			"machine_type": machine.Type,
			"durability":   machine.Durability,
		},
	}
	if err := s.transactions.CreateWithTx(ctx, tx, audit); err != nil {
		logger.Error("machine sell: audit entry failed", "user", externalID, "error", err)
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("machine sell: commit failed", "user", externalID, "error", err)
		return 0, err
	}

	metrics.MachineSales.Inc()
	publish(s.events, EventMachineSold, map[string]any{
		"user_id": externalID,
		"type":    machine.Type,
		"price":   price,
	})
	return price, nil
}
