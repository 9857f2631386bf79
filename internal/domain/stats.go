package domain

// PeriodStats are per-user per-period activity counters. They live in the
// counter store as an optimization and are always reconstructible from the
// reward ledger; settlement never trusts them.
type PeriodStats struct {
	Messages     int `json:"messages"`
	Reactions    int `json:"reactions"`
	VoiceMinutes int `json:"voice_minutes"`
	ActiveDays   int `json:"active_days"`
}

// WeeklyActivity is the ledger-derived 7-day window used for salary.
type WeeklyActivity struct {
	Messages   int64 `json:"messages"`
	Reactions  int64 `json:"reactions"`
	ActiveDays int64 `json:"active_days"`
}

// ActivityScore weights reactions double, matching the salary bonus tiers.
func (w WeeklyActivity) ActivityScore() int64 {
	return w.Messages + w.Reactions*2
}
