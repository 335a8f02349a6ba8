package services

import "mybudget/internal/models"

// TransactionFilter holds optional filter parameters for listing
// transactions. Filters combine with AND semantics; zero values impose no
// constraint. Dates are inclusive bounds in YYYY-MM-DD form.
type TransactionFilter struct {
	Category string
	Type     *models.TransactionType
	DateFrom string
	DateTo   string
}

// TransactionPatch holds the optional fields of a partial transaction
// update. Nil fields keep their stored value.
type TransactionPatch struct {
	Category    *string
	Amount      *float64
	Type        *models.TransactionType
	Description *string
	Date        *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(category string, amount float64, txType models.TransactionType, description, date string) (*models.Transaction, error)
	GetTransactions(filter TransactionFilter) ([]models.Transaction, error)
	GetTransactionByID(id uint) (*models.Transaction, error)
	UpdateTransaction(id uint, patch TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(id uint) error
	GetStats() (*models.Stats, error)
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(category string, limit float64, month, year int) (*models.Budget, error)
	GetBudgets(month, year *int) ([]models.Budget, error)
	GetBudgetByID(id uint) (*models.Budget, error)
	UpdateBudgetLimit(id uint, limit float64) (*models.Budget, error)
	DeleteBudget(id uint) error
	GetBudgetSummary(id uint) (*models.BudgetSummary, error)
}

// ExportServicer defines the contract for exporting transactions.
type ExportServicer interface {
	ExportCSV(filter TransactionFilter) (string, error)
}
