package service

import (
	"context"
	"errors"
	"fmt"

	"chat_economy/internal/config"
	"chat_economy/internal/domain"
	"chat_economy/internal/logger"
	"chat_economy/internal/metrics"
	"chat_economy/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ExchangeService converts dollars into tokens at the configured fixed rate.
//
// Dollars have no stored balance: the debit is a negative balancing entry in
// the reward ledger, so the running sum stays consistent. The entry, the
// token credit and the audit record commit in one database transaction.
type ExchangeService struct {
	db           *pgxpool.Pool
	users        *repository.UserRepository
	rewards      *repository.RewardRepository
	transactions *repository.TransactionRepository
	cfg          config.EconomyConfig
	events       EventPublisher
}

func NewExchangeService(db *pgxpool.Pool, cfg config.EconomyConfig, events EventPublisher) *ExchangeService {
	return &ExchangeService{
		db:           db,
		users:        repository.NewUserRepository(db),
		rewards:      repository.NewRewardRepository(db),
		transactions: repository.NewTransactionRepository(db),
		cfg:          cfg,
		events:       events,
	}
}

// ValidateAmount checks quantization without touching storage.
func ValidateAmount(amountDollars, rate int64) error {
	if amountDollars <= 0 || rate <= 0 || amountDollars%rate != 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Exchange converts amountDollars into tokens. Returns the tokens received.
func (s *ExchangeService) Exchange(ctx context.Context, externalID string, amountDollars int64) (int64, error) {
	if err := ValidateAmount(amountDollars, s.cfg.ExchangeRate); err != nil {
		return 0, err
	}

	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		logger.Error("exchange: user lookup failed", "user", externalID, "error", err)
		return 0, err
	}

	tokens := amountDollars / s.cfg.ExchangeRate

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		logger.Error("exchange: begin tx failed", "user", externalID, "error", err)
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Serialize per-user exchanges: a concurrent attempt blocks here until
	// this one commits, then re-reads the reduced balance.
	if _, err := tx.Exec(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, user.ID); err != nil {
		logger.Error("exchange: user lock failed", "user", externalID, "error", err)
		return 0, err
	}

	balance, err := s.rewards.SumAmountWithTx(ctx, tx, user.ID)
	if err != nil {
		logger.Error("exchange: balance read failed", "user", externalID, "error", err)
		return 0, err
	}
	if balance < float64(amountDollars) {
		return 0, ErrInsufficientFunds
	}

	debit := &domain.ActivityReward{
		UserID:     user.ID,
		Type:       domain.RewardExchangeDebit,
		Amount:     -float64(amountDollars),
		Multiplier: 1,
	}
	if err := s.rewards.AppendWithTx(ctx, tx, debit); err != nil {
		logger.Error("exchange: debit entry failed", "user", externalID, "error", err)
		return 0, err
	}

	if _, err := s.users.AddTokensWithTx(ctx, tx, user.ID, tokens); err != nil {
		logger.Error("exchange: token credit failed", "user", externalID, "error", err)
		return 0, err
	}

	audit := &domain.Transaction{
		UserID:      user.ID,
		Type:        domain.TxDollarExchange,
		Amount:      tokens,
		Description: fmt.Sprintf("Exchanged %d dollars for %d tokens", amountDollars, tokens),
		Meta:        map[string]interface{}{"dollars": amountDollars, "rate": s.cfg.ExchangeRate},
	}
	if err := s.transactions.CreateWithTx(ctx, tx, audit); err != nil {
		logger.Error("exchange: audit entry failed", "user", externalID, "error", err)
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("exchange: commit failed", "user", externalID, "error", err)
		return 0, err
	}

	metrics.Exchanges.Inc()
	publish(s.events, EventExchange, map[string]any{
		"user_id": externalID,
		"dollars": amountDollars,
		"tokens":  tokens,
	})
	return tokens, nil
}

// DollarBalance returns the user's current dollar balance, computed fresh
// from the ledger.
func (s *ExchangeService) DollarBalance(ctx context.Context, externalID string) (float64, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return s.rewards.SumAmount(ctx, user.ID)
}
