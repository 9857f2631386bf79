package domain

import "time"

// Transaction types. Every token balance mutation writes one of these inside
// the same database transaction that performs the mutation.
const (
	TxDollarExchange    = "DOLLAR_EXCHANGE"
	TxRegistrationBonus = "REGISTRATION_BONUS"
	TxWeeklySalary      = "WEEKLY_SALARY"
	TxMachinePurchase   = "MACHINE_PURCHASE"
	TxMachineSale       = "MACHINE_SALE"
)

// Transaction is an immutable audit entry for token-affecting events.
type Transaction struct {
	ID          int64                  `db:"id" json:"id"`
	UserID      int64                  `db:"user_id" json:"user_id"`
	Type        string                 `db:"type" json:"type"`
	Amount      int64                  `db:"amount" json:"amount"`
	Description string                 `db:"description" json:"description"`
	Meta        map[string]interface{} `db:"meta" json:"meta,omitempty"`
	CreatedAt   time.Time              `db:"created_at" json:"created_at"`
}
