package domain

import "time"

// Machine is a depreciating asset owned by exactly one user. Efficiency and
// durability stay within [0,100].
type Machine struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	Type       string    `db:"type" json:"type"`
	Level      int       `db:"level" json:"level"`
	Efficiency int       `db:"efficiency" json:"efficiency"`
	Durability int       `db:"durability" json:"durability"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AgeDays returns the machine age in whole days at the given instant.
func (m *Machine) AgeDays(now time.Time) int {
	d := now.Sub(m.CreatedAt)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}
