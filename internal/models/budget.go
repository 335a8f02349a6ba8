package models

// AlertLevel classifies how far a budget is into its limit.
type AlertLevel string

const (
	AlertNone    AlertLevel = "none"
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
)

// Budget is a monthly spending ceiling for a category. At most one budget
// may exist per (category, month, year).
type Budget struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Category string  `gorm:"not null;uniqueIndex:idx_budgets_category_period" json:"category"`
	Limit    float64 `gorm:"column:limit_amount;not null" json:"limit"`
	Month    int     `gorm:"not null;uniqueIndex:idx_budgets_category_period" json:"month"`
	Year     int     `gorm:"not null;uniqueIndex:idx_budgets_category_period" json:"year"`
}

// BudgetSummary merges a budget with its spending for the budget's month.
// Derived on every read, never persisted.
type BudgetSummary struct {
	Budget
	Spent      float64    `json:"spent"`
	Remaining  float64    `json:"remaining"`
	Percentage float64    `json:"percentage"`
	Alert      AlertLevel `json:"alert"`
}
