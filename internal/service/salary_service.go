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
	"chat_economy/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SalaryService pays a weekly bonus derived from the trailing 7-day activity
// window. The claim marker is advanced with a single-statement check-and-set
// inside the payout transaction, so concurrent claims cannot both pay.
type SalaryService struct {
	db           *pgxpool.Pool
	users        *repository.UserRepository
	rewards      *repository.RewardRepository
	transactions *repository.TransactionRepository
	cfg          config.EconomyConfig
	events       EventPublisher
}

func NewSalaryService(db *pgxpool.Pool, cfg config.EconomyConfig, events EventPublisher) *SalaryService {
	return &SalaryService{
		db:           db,
		users:        repository.NewUserRepository(db),
		rewards:      repository.NewRewardRepository(db),
		transactions: repository.NewTransactionRepository(db),
		cfg:          cfg,
		events:       events,
	}
}

// ClaimStatus reports whether a claim is currently permitted and, if not,
// when it next will be.
type ClaimStatus struct {
	CanClaim      bool       `json:"can_claim"`
	NextAvailable *time.Time `json:"next_available,omitempty"`
}

// SalaryAmount computes the payout for a 7-day activity window.
func SalaryAmount(cfg config.EconomyConfig, w domain.WeeklyActivity) int64 {
	activeDaysBonus := w.ActiveDays * cfg.SalaryPerActiveDay
	if activeDaysBonus > cfg.SalaryActiveDaysCap {
		activeDaysBonus = cfg.SalaryActiveDaysCap
	}

	var activityBonus int64
	switch score := w.ActivityScore(); {
	case score >= 350:
		activityBonus = 100
	case score >= 200:
		activityBonus = 50
	case score >= 100:
		activityBonus = 25
	}

	return cfg.SalaryBase + activeDaysBonus + activityBonus
}

// CanClaim checks eligibility without side effects.
func (s *SalaryService) CanClaim(ctx context.Context, externalID string) (*ClaimStatus, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.LastSalaryAt == nil {
		return &ClaimStatus{CanClaim: true}, nil
	}
	next := user.LastSalaryAt.Add(s.cfg.SalaryPeriod)
	if time.Now().Before(next) {
		return &ClaimStatus{CanClaim: false, NextAvailable: &next}, nil
	}
	return &ClaimStatus{CanClaim: true}, nil
}

// Claim pays the weekly salary. Returns the dollar amount paid out.
// A lost race returns ErrClaimConflict and pays nothing.
func (s *SalaryService) Claim(ctx context.Context, externalID string) (int64, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	week, err := s.rewards.WeeklyActivity(ctx, user.ID, time.Now().Add(-s.cfg.SalaryPeriod))
	if err != nil {
		logger.Error("salary: activity aggregation failed", "user", externalID, "error", err)
		return 0, err
	}
	amount := SalaryAmount(s.cfg, week)

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		logger.Error("salary: begin tx failed", "user", externalID, "error", err)
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	won, err := s.users.ClaimSalaryMarker(ctx, tx, user.ID, int64(s.cfg.SalaryPeriod.Seconds()))
	if err != nil {
		logger.Error("salary: marker update failed", "user", externalID, "error", err)
		return 0, err
	}
	if !won {
		return 0, ErrClaimConflict
	}

	payout := &domain.ActivityReward{
		UserID:     user.ID,
		Type:       domain.RewardWeeklySalary,
		Amount:     float64(amount),
		Multiplier: 1,
	}
	if err := s.rewards.AppendWithTx(ctx, tx, payout); err != nil {
		logger.Error("salary: payout entry failed", "user", externalID, "error", err)
		return 0, err
	}

	audit := &domain.Transaction{
		UserID:      user.ID,
		Type:        domain.TxWeeklySalary,
		Amount:      amount,
		Description: fmt.Sprintf("Weekly salary: %d dollars", amount),
		Meta: map[string]interface{}{
			"messages":    week.Messages,
			"reactions":   week.Reactions,
			"active_days": week.ActiveDays,
		},
	}
	if err := s.transactions.CreateWithTx(ctx, tx, audit); err != nil {
		logger.Error("salary: audit entry failed", "user", externalID, "error", err)
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("salary: commit failed", "user", externalID, "error", err)
		return 0, err
	}

	metrics.SalaryClaims.Inc()
	publish(s.events, EventSalaryClaimed, map[string]any{
		"user_id": externalID,
		"amount":  amount,
	})
	return amount, nil
}
