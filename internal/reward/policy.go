package reward

import (
	"strings"
	"unicode/utf8"

	"chat_economy/internal/config"
	"chat_economy/internal/domain"
)

const (
	MinMultiplier = 0.1
	MaxMultiplier = 2.0

	shortMessageMultiplier = 0.5
	repeatedRunMultiplier  = 0.3
	repeatedRunLength      = 5
)

// gameKeywords earn +0.1 each when mentioned in a message.
var gameKeywords = []string{
	"mine", "machine", "drill", "token", "dollar",
	"upgrade", "sell", "energy", "salary", "exchange",
}

// bonusEmojis earn the 1.5 reaction multiplier.
var bonusEmojis = map[string]struct{}{
	"🔥": {}, "💎": {}, "⛏️": {}, "🚀": {}, "💰": {},
}

// Policy computes reward amounts from activity events. Pure and
// deterministic: no clock, no I/O.
type Policy struct {
	cfg config.EconomyConfig
}

func NewPolicy(cfg config.EconomyConfig) *Policy {
	return &Policy{cfg: cfg}
}

// MessageMultiplier derives the quality multiplier of a message.
//
// Length and keyword bonuses accumulate first; the spam overrides then
// replace the accumulated value outright. The repeated-character override is
// checked last so it wins when a short message is also a character run.
func MessageMultiplier(content string) float64 {
	mult := 1.0

	length := utf8.RuneCountInString(content)
	if length > 50 {
		mult += 0.2
	}
	if length > 100 {
		mult += 0.3
	}

	lower := strings.ToLower(content)
	for _, kw := range gameKeywords {
		if strings.Contains(lower, kw) {
			mult += 0.1
		}
	}

	if length < 10 {
		mult = shortMessageMultiplier
	}
	if hasRepeatedRun(content, repeatedRunLength) {
		mult = repeatedRunMultiplier
	}

	return clamp(mult, MinMultiplier, MaxMultiplier)
}

// ReactionMultiplier is 1.5 for bonus emojis, 1.0 otherwise.
func ReactionMultiplier(emoji string) float64 {
	if _, ok := bonusEmojis[emoji]; ok {
		return 1.5
	}
	return 1.0
}

// LoginStreakMultiplier grows 0.1 per consecutive day past the first,
// capped at the global multiplier ceiling.
func LoginStreakMultiplier(streak int) float64 {
	if streak < 1 {
		streak = 1
	}
	return clamp(1.0+0.1*float64(streak-1), MinMultiplier, MaxMultiplier)
}

// Evaluate returns the reward amount and multiplier for an activity event.
func (p *Policy) Evaluate(kind domain.ActivityType, payload any) (amount, multiplier float64) {
	switch kind {
	case domain.ActivityMessage:
		msg, _ := payload.(domain.MessagePayload)
		multiplier = MessageMultiplier(msg.Content)
		amount = p.cfg.MessageReward * multiplier
	case domain.ActivityReaction:
		r, _ := payload.(domain.ReactionPayload)
		multiplier = ReactionMultiplier(r.Emoji)
		amount = p.cfg.ReactionReward * multiplier
	case domain.ActivityVoice:
		v, _ := payload.(domain.VoicePayload)
		minutes := v.Minutes
		if minutes < 1 {
			minutes = 1
		}
		// Duration is self-reported; one event never pays past the day's
		// allowance.
		if p.cfg.DailyVoiceLimit > 0 && minutes > p.cfg.DailyVoiceLimit {
			minutes = p.cfg.DailyVoiceLimit
		}
		multiplier = 1.0
		amount = p.cfg.VoiceReward * float64(minutes)
	case domain.ActivityDailyLogin:
		streak, _ := payload.(int)
		multiplier = LoginStreakMultiplier(streak)
		amount = p.cfg.DailyLoginReward * multiplier
	default:
		return 0, 0
	}
	return amount, multiplier
}

// hasRepeatedRun reports whether s contains n or more identical consecutive
// runes.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= n {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
