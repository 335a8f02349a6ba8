package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"mybudget/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTransaction creates a transaction with the given category, type,
// amount, and date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, category string, txType models.TransactionType, amount float64, date string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Category:    category,
		Amount:      amount,
		Type:        txType,
		Description: fmt.Sprintf("test transaction %d", nextID()),
		Date:        date,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestExpense creates an expense transaction.
func CreateTestExpense(t *testing.T, db *gorm.DB, category string, amount float64, date string) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, category, models.TransactionTypeExpense, amount, date)
}

// CreateTestIncome creates an income transaction.
func CreateTestIncome(t *testing.T, db *gorm.DB, category string, amount float64, date string) *models.Transaction {
	t.Helper()
	return CreateTestTransaction(t, db, category, models.TransactionTypeIncome, amount, date)
}

// CreateTestBudget creates a budget for the given category and period.
func CreateTestBudget(t *testing.T, db *gorm.DB, category string, limit float64, month, year int) *models.Budget {
	t.Helper()

	budget := &models.Budget{
		Category: category,
		Limit:    limit,
		Month:    month,
		Year:     year,
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
