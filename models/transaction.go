package models

import "time"

// TransactionType classifies a ledger entry as money in or money out.
type TransactionType string

const (
	TypeIncome  TransactionType = "Income"
	TypeExpense TransactionType = "Expense"
)

// Valid reports whether t is one of the two known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single ledger entry. Amount carries a derived sign:
// negative for Expense, positive for Income, regardless of the sign the
// caller supplied.
type Transaction struct {
	ID          string          `gorm:"primaryKey;size:36" json:"_id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Type        TransactionType `gorm:"size:16;not null" json:"type"`
	Category    string          `gorm:"size:255" json:"category,omitempty"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}
