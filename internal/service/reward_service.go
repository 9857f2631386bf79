package service

import (
	"context"
	"errors"
	"time"

	"chat_economy/internal/cache"
	"chat_economy/internal/config"
	"chat_economy/internal/domain"
	"chat_economy/internal/logger"
	"chat_economy/internal/metrics"
	"chat_economy/internal/repository"
	"chat_economy/internal/reward"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RewardService is the activity reward engine: it turns observed chat
// activity into dollar ledger entries, subject to per-day quotas tracked in
// the counter store.
//
// The path is deliberately fail-open: a quota hit and an internal failure
// both yield a nil result, because an accrual problem must never block the
// user action that triggered it. Failures are logged here and nowhere else.
type RewardService struct {
	db       *pgxpool.Pool
	users    *repository.UserRepository
	rewards  *repository.RewardRepository
	counters *cache.CounterStore
	policy   *reward.Policy
	cfg      config.EconomyConfig
	events   EventPublisher
}

func NewRewardService(db *pgxpool.Pool, counters *cache.CounterStore, cfg config.EconomyConfig, events EventPublisher) *RewardService {
	return &RewardService{
		db:       db,
		users:    repository.NewUserRepository(db),
		rewards:  repository.NewRewardRepository(db),
		counters: counters,
		policy:   reward.NewPolicy(cfg),
		cfg:      cfg,
		events:   events,
	}
}

type counterRule struct {
	field string
	limit int64
	incr  int64
}

func (s *RewardService) ruleFor(kind domain.ActivityType, payload any) (counterRule, bool) {
	switch kind {
	case domain.ActivityMessage:
		return counterRule{"messages", int64(s.cfg.DailyMessageLimit), 1}, true
	case domain.ActivityReaction:
		return counterRule{"reactions", int64(s.cfg.DailyReactionLimit), 1}, true
	case domain.ActivityVoice:
		v, _ := payload.(domain.VoicePayload)
		minutes := int64(v.Minutes)
		if minutes < 1 {
			minutes = 1
		}
		return counterRule{"voice_minutes", int64(s.cfg.DailyVoiceLimit), minutes}, true
	default:
		return counterRule{}, false
	}
}

// RewardActivity processes one activity event. It returns nil when the
// event earned nothing: quota reached, duplicate daily login, or an internal
// failure (logged). Callers must not distinguish these cases.
func (s *RewardService) RewardActivity(ctx context.Context, externalID string, kind domain.ActivityType, payload any) *domain.RewardResult {
	user, err := s.users.Ensure(ctx, externalID)
	if err != nil {
		logger.Error("reward: failed to ensure user", "user", externalID, "kind", kind, "error", err)
		return nil
	}

	if kind == domain.ActivityDailyLogin {
		return s.rewardDailyLogin(ctx, user)
	}

	rule, ok := s.ruleFor(kind, payload)
	if !ok {
		logger.Warn("reward: unknown activity kind", "user", externalID, "kind", kind)
		return nil
	}

	// Best-effort quota gate. A cold or failing cache reads as zero, which
	// can only over-grant a bounded reward, never block one.
	now := time.Now()
	dailyKey := cache.DailyKey(user.ID, now)
	used := s.counters.GetField(ctx, dailyKey, rule.field)
	if used >= rule.limit {
		metrics.QuotaBlocked.WithLabelValues(string(kind)).Inc()
		return nil
	}

	// Voice minutes are caller-supplied; an event that overshoots the cap
	// pays only the quota's remainder.
	if remaining := rule.limit - used; rule.incr > remaining {
		rule.incr = remaining
		if kind == domain.ActivityVoice {
			payload = domain.VoicePayload{Minutes: int(remaining)}
		}
	}

	amount, multiplier := s.policy.Evaluate(kind, payload)
	if amount <= 0 {
		return nil
	}

	entry := &domain.ActivityReward{
		UserID:     user.ID,
		Type:       kind,
		Amount:     amount,
		Multiplier: multiplier,
	}
	if err := s.rewards.Append(ctx, entry); err != nil {
		logger.Error("reward: failed to append ledger entry", "user", externalID, "kind", kind, "error", err)
		return nil
	}

	s.bumpCounters(ctx, user.ID, rule, now)
	metrics.RewardsGranted.WithLabelValues(string(kind)).Inc()

	result := &domain.RewardResult{Amount: amount, Type: kind, Multiplier: multiplier}
	publish(s.events, EventRewardGranted, map[string]any{
		"user_id": user.ExternalID,
		"type":    kind,
		"amount":  amount,
	})
	return result
}

func (s *RewardService) rewardDailyLogin(ctx context.Context, user *domain.User) *domain.RewardResult {
	// The login marker lives in the ledger, not the cache: a second login
	// reward on the same day is a real double-pay, so the guard is a
	// single-statement check-and-set on the user row. Marker and payout
	// commit together; a failed payout leaves the day unmarked and
	// claimable again.
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		logger.Error("reward: begin login tx failed", "user", user.ExternalID, "error", err)
		return nil
	}
	defer func() { _ = tx.Rollback(ctx) }()

	streak, first, err := s.users.MarkDailyLogin(ctx, tx, user.ID)
	if err != nil {
		logger.Error("reward: failed to mark daily login", "user", user.ExternalID, "error", err)
		return nil
	}
	if !first {
		return nil
	}

	amount, multiplier := s.policy.Evaluate(domain.ActivityDailyLogin, streak)

	entry := &domain.ActivityReward{
		UserID:     user.ID,
		Type:       domain.ActivityDailyLogin,
		Amount:     amount,
		Multiplier: multiplier,
	}
	if err := s.rewards.AppendWithTx(ctx, tx, entry); err != nil {
		logger.Error("reward: failed to append login entry", "user", user.ExternalID, "error", err)
		return nil
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("reward: login commit failed", "user", user.ExternalID, "error", err)
		return nil
	}

	now := time.Now()
	s.counters.SetField(ctx, cache.DailyKey(user.ID, now), "daily_login", 1, s.cfg.DailyCounterTTL)
	s.markActiveDay(ctx, user.ID, now)
	metrics.RewardsGranted.WithLabelValues(string(domain.ActivityDailyLogin)).Inc()

	result := &domain.RewardResult{Amount: amount, Type: domain.ActivityDailyLogin, Multiplier: multiplier}
	publish(s.events, EventRewardGranted, map[string]any{
		"user_id": user.ExternalID,
		"type":    domain.ActivityDailyLogin,
		"amount":  amount,
		"streak":  streak,
	})
	return result
}

func (s *RewardService) bumpCounters(ctx context.Context, userID int64, rule counterRule, now time.Time) {
	s.counters.IncrField(ctx, cache.DailyKey(userID, now), rule.field, rule.incr, s.cfg.DailyCounterTTL)
	s.counters.IncrField(ctx, cache.WeeklyKey(userID, now), rule.field, rule.incr, s.cfg.WeeklyCounterTTL)
	s.markActiveDay(ctx, userID, now)
}

func (s *RewardService) markActiveDay(ctx context.Context, userID int64, now time.Time) {
	day := now.UTC().Format("2006-01-02")
	s.counters.SetField(ctx, cache.WeeklyKey(userID, now), "d:"+day, 1, s.cfg.WeeklyCounterTTL)
}

// WeeklySummary is the cached view of this week's counters. It is advisory
// only; settlement math reads the ledger.
func (s *RewardService) WeeklySummary(ctx context.Context, externalID string) (*domain.PeriodStats, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	fields := s.counters.GetAllFields(ctx, cache.WeeklyKey(user.ID, time.Now()))
	stats := &domain.PeriodStats{
		Messages:     int(fields["messages"]),
		Reactions:    int(fields["reactions"]),
		VoiceMinutes: int(fields["voice_minutes"]),
	}
	for f := range fields {
		if len(f) > 2 && f[:2] == "d:" {
			stats.ActiveDays++
		}
	}
	return stats, nil
}

// RewardHistory returns the newest dollar ledger entries for a user.
func (s *RewardService) RewardHistory(ctx context.Context, externalID string, limit int) ([]*domain.ActivityReward, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.rewards.Recent(ctx, user.ID, limit)
}
