package models

// DateLayout is the wire and storage format for transaction dates.
const DateLayout = "2006-01-02"

// TransactionType represents the direction of a transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single income or expense entry. Amounts are
// always stored positive; Type carries the direction. The two must never
// be combined into a signed amount, aggregate math depends on it.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Category    string          `gorm:"not null" json:"category"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Description string          `json:"description"`
	Date        string          `gorm:"type:text;not null;index" json:"date"`
}

// Stats holds the global income/expense totals. Derived, never persisted.
type Stats struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}
