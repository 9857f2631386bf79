package domain

import "time"

// ActivityType is the kind of chat activity that earns dollars.
type ActivityType string

const (
	ActivityMessage    ActivityType = "MESSAGE"
	ActivityReaction   ActivityType = "REACTION"
	ActivityVoice      ActivityType = "VOICE"
	ActivityDailyLogin ActivityType = "DAILY_LOGIN"

	// RewardWeeklySalary and RewardExchangeDebit are ledger-only entry types:
	// they participate in the dollar-balance sum but are never produced by the
	// reward path itself. Exchange debits carry a negative amount so the
	// running sum stays consistent after a conversion.
	RewardWeeklySalary  ActivityType = "WEEKLY_SALARY"
	RewardExchangeDebit ActivityType = "DOLLAR_EXCHANGE"
)

// ActivityReward is one append-only entry of the dollar ledger.
type ActivityReward struct {
	ID         int64        `db:"id" json:"id"`
	UserID     int64        `db:"user_id" json:"user_id"`
	Type       ActivityType `db:"type" json:"type"`
	Amount     float64      `db:"amount" json:"amount"`
	Multiplier float64      `db:"multiplier" json:"multiplier"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
}

// RewardResult is what the reward engine reports back to the caller.
type RewardResult struct {
	Amount     float64      `json:"amount"`
	Type       ActivityType `json:"type"`
	Multiplier float64      `json:"multiplier"`
}

// MessagePayload carries the quality signals of a message event.
type MessagePayload struct {
	Content string `json:"content"`
}

// ReactionPayload carries the emoji of a reaction event.
type ReactionPayload struct {
	Emoji string `json:"emoji"`
}

// VoicePayload carries the length of a finished voice session.
type VoicePayload struct {
	Minutes int `json:"minutes"`
}
