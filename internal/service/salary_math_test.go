package service

import (
	"testing"

	"chat_economy/internal/config"
	"chat_economy/internal/domain"
)

func salaryCfg() config.EconomyConfig {
	return config.EconomyConfig{
		SalaryBase:          250,
		SalaryPerActiveDay:  7,
		SalaryActiveDaysCap: 50,
	}
}

func TestSalaryAmount(t *testing.T) {
	cases := []struct {
		name string
		week domain.WeeklyActivity
		want int64
	}{
		{"idle week", domain.WeeklyActivity{}, 250},
		{"one active day, no bonus tier", domain.WeeklyActivity{Messages: 10, ActiveDays: 1}, 257},
		{"score 100 tier", domain.WeeklyActivity{Messages: 100, ActiveDays: 2}, 250 + 14 + 25},
		{"score 200 tier via reactions", domain.WeeklyActivity{Reactions: 100, ActiveDays: 3}, 250 + 21 + 50},
		{"score 350 tier", domain.WeeklyActivity{Messages: 150, Reactions: 100, ActiveDays: 7}, 250 + 49 + 100},
		{"active days capped", domain.WeeklyActivity{ActiveDays: 20}, 250 + 50},
	}

	for _, tc := range cases {
		if got := SalaryAmount(salaryCfg(), tc.week); got != tc.want {
			t.Fatalf("%s: SalaryAmount = %d; want %d", tc.name, got, tc.want)
		}
	}
}

func TestActivityScoreWeighting(t *testing.T) {
	w := domain.WeeklyActivity{Messages: 10, Reactions: 20}
	if got := w.ActivityScore(); got != 50 {
		t.Fatalf("ActivityScore = %d; want 50", got)
	}
}

func TestSalaryTierBoundaries(t *testing.T) {
	for _, tc := range []struct {
		score int64
		bonus int64
	}{
		{99, 0}, {100, 25}, {199, 25}, {200, 50}, {349, 50}, {350, 100},
	} {
		week := domain.WeeklyActivity{Messages: tc.score}
		want := int64(250) + tc.bonus
		if got := SalaryAmount(salaryCfg(), week); got != want {
			t.Fatalf("score %d: SalaryAmount = %d; want %d", tc.score, got, want)
		}
	}
}
