package domain

import "time"

// User is a participant of the economy, identified by the external chat id.
// The dollar balance is not stored here: it is the sum of the user's reward
// ledger entries. Tokens are the only mutable stored balance.
type User struct {
	ID            int64      `db:"id" json:"id"`
	ExternalID    string     `db:"external_id" json:"external_id"`
	Tokens        int64      `db:"tokens" json:"tokens"`
	Energy        int        `db:"energy" json:"energy"`
	Level         int        `db:"level" json:"level"`
	Location      string     `db:"location" json:"location"`
	LoginStreak   int        `db:"login_streak" json:"login_streak"`
	LastLoginDate *time.Time `db:"last_login_date" json:"last_login_date,omitempty"`
	LastSalaryAt  *time.Time `db:"last_salary_claim" json:"last_salary_claim,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
