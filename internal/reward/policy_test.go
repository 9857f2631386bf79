package reward

import (
	"math"
	"strings"
	"testing"

	"chat_economy/internal/config"
	"chat_economy/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMessageMultiplier(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    float64
	}{
		{"plain short-ish", "this is a plain message", 1.0},
		{"short override", "hi", 0.5},
		{"repeated run beats short override", "aaaaa", 0.3},
		{"repeated run in long message", strings.Repeat("x", 4) + "zzzzz" + strings.Repeat("y", 60), 0.3},
		{"length over 50", strings.Repeat("a b ", 15), 1.2},
		{"length over 100", strings.Repeat("a b ", 30), 1.5},
		{"single keyword", "time to mine today?", 1.1},
		{"two keywords", "exchange for a token maybe", 1.2},
		{"four identical chars is fine", "aaaa ok then", 1.0},
	}

	for _, tc := range cases {
		if got := MessageMultiplier(tc.content); !almostEqual(got, tc.want) {
			t.Fatalf("%s: MessageMultiplier(%q) = %v; want %v", tc.name, tc.content, got, tc.want)
		}
	}
}

func TestMessageMultiplierClamp(t *testing.T) {
	// over 100 chars plus every keyword pushes past the ceiling
	content := strings.Repeat("filler words here ", 6) +
		"mine machine drill token dollar upgrade sell energy salary exchange"
	if got := MessageMultiplier(content); !almostEqual(got, MaxMultiplier) {
		t.Fatalf("expected clamp to %v, got %v", MaxMultiplier, got)
	}
}

func TestReactionMultiplier(t *testing.T) {
	if got := ReactionMultiplier("🔥"); !almostEqual(got, 1.5) {
		t.Fatalf("bonus emoji = %v; want 1.5", got)
	}
	if got := ReactionMultiplier("👍"); !almostEqual(got, 1.0) {
		t.Fatalf("plain emoji = %v; want 1.0", got)
	}
}

func TestLoginStreakMultiplier(t *testing.T) {
	cases := []struct {
		streak int
		want   float64
	}{
		{0, 1.0},
		{1, 1.0},
		{2, 1.1},
		{5, 1.4},
		{11, 2.0},
		{40, 2.0},
	}
	for _, tc := range cases {
		if got := LoginStreakMultiplier(tc.streak); !almostEqual(got, tc.want) {
			t.Fatalf("LoginStreakMultiplier(%d) = %v; want %v", tc.streak, got, tc.want)
		}
	}
}

func TestEvaluate(t *testing.T) {
	cfg := config.EconomyConfig{
		MessageReward:    10,
		ReactionReward:   5,
		VoiceReward:      2,
		DailyLoginReward: 50,
	}
	p := NewPolicy(cfg)

	amount, mult := p.Evaluate(domain.ActivityMessage, domain.MessagePayload{Content: "aaaaa"})
	if !almostEqual(mult, 0.3) || !almostEqual(amount, 3) {
		t.Fatalf("message eval = (%v, %v); want (3, 0.3)", amount, mult)
	}

	amount, mult = p.Evaluate(domain.ActivityReaction, domain.ReactionPayload{Emoji: "💎"})
	if !almostEqual(mult, 1.5) || !almostEqual(amount, 7.5) {
		t.Fatalf("reaction eval = (%v, %v); want (7.5, 1.5)", amount, mult)
	}

	amount, _ = p.Evaluate(domain.ActivityVoice, domain.VoicePayload{Minutes: 30})
	if !almostEqual(amount, 60) {
		t.Fatalf("voice eval = %v; want 60", amount)
	}

	amount, mult = p.Evaluate(domain.ActivityDailyLogin, 3)
	if !almostEqual(mult, 1.2) || !almostEqual(amount, 60) {
		t.Fatalf("login eval = (%v, %v); want (60, 1.2)", amount, mult)
	}
}

func TestEvaluateVoiceDurationCapped(t *testing.T) {
	p := NewPolicy(config.EconomyConfig{VoiceReward: 2, DailyVoiceLimit: 120})

	// a self-reported marathon pays at most the daily allowance
	amount, _ := p.Evaluate(domain.ActivityVoice, domain.VoicePayload{Minutes: 1000000})
	if !almostEqual(amount, 240) {
		t.Fatalf("oversized voice eval = %v; want 240", amount)
	}

	amount, _ = p.Evaluate(domain.ActivityVoice, domain.VoicePayload{Minutes: 120})
	if !almostEqual(amount, 240) {
		t.Fatalf("exact-limit voice eval = %v; want 240", amount)
	}

	amount, _ = p.Evaluate(domain.ActivityVoice, domain.VoicePayload{Minutes: 45})
	if !almostEqual(amount, 90) {
		t.Fatalf("in-range voice eval = %v; want 90", amount)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	p := NewPolicy(config.EconomyConfig{MessageReward: 10})
	payload := domain.MessagePayload{Content: "let's mine a token together, plenty of dollars in it"}
	a1, m1 := p.Evaluate(domain.ActivityMessage, payload)
	a2, m2 := p.Evaluate(domain.ActivityMessage, payload)
	if a1 != a2 || m1 != m2 {
		t.Fatalf("evaluation not deterministic: (%v,%v) vs (%v,%v)", a1, m1, a2, m2)
	}
}
