package services

import (
	"strings"
	"testing"

	"mybudget/internal/models"
	"mybudget/internal/testutil"
)

func TestCreateTransaction(t *testing.T) {
	t.Run("valid_expense", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		created, err := svc.CreateTransaction("Groceries", 42.50, models.TransactionTypeExpense, "weekly shop", "2024-03-15")
		testutil.AssertNoError(t, err)

		if created.ID == 0 {
			t.Fatal("expected non-zero transaction ID")
		}

		got, err := svc.GetTransactionByID(created.ID)
		testutil.AssertNoError(t, err)
		if got.Category != "Groceries" {
			t.Errorf("expected category Groceries, got %s", got.Category)
		}
		if got.Amount != 42.50 {
			t.Errorf("expected amount 42.50, got %v", got.Amount)
		}
		if got.Type != models.TransactionTypeExpense {
			t.Errorf("expected type expense, got %s", got.Type)
		}
		if got.Description != "weekly shop" {
			t.Errorf("expected description 'weekly shop', got %q", got.Description)
		}
		if got.Date != "2024-03-15" {
			t.Errorf("expected date 2024-03-15, got %s", got.Date)
		}
	})

	t.Run("valid_income", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		created, err := svc.CreateTransaction("Salary", 3000, models.TransactionTypeIncome, "", "2024-03-01")
		testutil.AssertNoError(t, err)

		if created.Type != models.TransactionTypeIncome {
			t.Errorf("expected type income, got %s", created.Type)
		}
		if created.Description != "" {
			t.Errorf("expected empty description, got %q", created.Description)
		}
	})

	t.Run("missing_fields_are_all_reported", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		_, err := svc.CreateTransaction("", 0, "", "", "not-a-date")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		for _, field := range []string{"category", "amount", "type", "date"} {
			if !strings.Contains(err.Error(), field) {
				t.Errorf("expected error message to name %q, got %q", field, err.Error())
			}
		}
	})

	t.Run("negative_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		_, err := svc.CreateTransaction("Groceries", -10, models.TransactionTypeExpense, "", "2024-03-15")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("unknown_type", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		_, err := svc.CreateTransaction("Groceries", 10, "transfer", "", "2024-03-15")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetTransactions(t *testing.T) {
	t.Run("empty_set_returns_empty_slice", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		transactions, err := svc.GetTransactions(TransactionFilter{})
		testutil.AssertNoError(t, err)
		if transactions == nil {
			t.Fatal("expected empty slice, got nil")
		}
		if len(transactions) != 0 {
			t.Errorf("expected 0 transactions, got %d", len(transactions))
		}
	})

	t.Run("ordered_by_date_desc_then_id_desc", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		first := testutil.CreateTestExpense(t, db, "Groceries", 10, "2024-03-10")
		second := testutil.CreateTestExpense(t, db, "Groceries", 20, "2024-03-20")
		third := testutil.CreateTestExpense(t, db, "Groceries", 30, "2024-03-20")

		transactions, err := svc.GetTransactions(TransactionFilter{})
		testutil.AssertNoError(t, err)

		if len(transactions) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(transactions))
		}
		want := []uint{third.ID, second.ID, first.ID}
		for i, id := range want {
			if transactions[i].ID != id {
				t.Errorf("position %d: expected transaction %d, got %d", i, id, transactions[i].ID)
			}
		}
	})

	t.Run("filters_are_conjunctive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		match := testutil.CreateTestExpense(t, db, "Groceries", 10, "2024-03-15")
		testutil.CreateTestExpense(t, db, "Rent", 800, "2024-03-15")       // wrong category
		testutil.CreateTestIncome(t, db, "Groceries", 5, "2024-03-15")     // wrong type
		testutil.CreateTestExpense(t, db, "Groceries", 15, "2024-04-02")   // outside range

		expense := models.TransactionTypeExpense
		transactions, err := svc.GetTransactions(TransactionFilter{
			Category: "Groceries",
			Type:     &expense,
			DateFrom: "2024-03-01",
			DateTo:   "2024-03-31",
		})
		testutil.AssertNoError(t, err)

		if len(transactions) != 1 {
			t.Fatalf("expected 1 transaction, got %d", len(transactions))
		}
		if transactions[0].ID != match.ID {
			t.Errorf("expected transaction %d, got %d", match.ID, transactions[0].ID)
		}
	})

	t.Run("date_bounds_are_inclusive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		testutil.CreateTestExpense(t, db, "Groceries", 10, "2024-03-01")
		testutil.CreateTestExpense(t, db, "Groceries", 20, "2024-03-31")

		transactions, err := svc.GetTransactions(TransactionFilter{DateFrom: "2024-03-01", DateTo: "2024-03-31"})
		testutil.AssertNoError(t, err)

		if len(transactions) != 2 {
			t.Errorf("expected 2 transactions, got %d", len(transactions))
		}
	})
}

func TestGetTransactionByID(t *testing.T) {
	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		_, err := svc.GetTransactionByID(9999)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestUpdateTransaction(t *testing.T) {
	t.Run("partial_update_keeps_other_fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		tx := testutil.CreateTestExpense(t, db, "Groceries", 50, "2024-03-15")

		amount := 75.0
		updated, err := svc.UpdateTransaction(tx.ID, TransactionPatch{Amount: &amount})
		testutil.AssertNoError(t, err)

		if updated.Amount != 75 {
			t.Errorf("expected amount 75, got %v", updated.Amount)
		}
		if updated.Category != "Groceries" {
			t.Errorf("expected category unchanged, got %s", updated.Category)
		}
		if updated.Type != models.TransactionTypeExpense {
			t.Errorf("expected type unchanged, got %s", updated.Type)
		}
		if updated.Date != "2024-03-15" {
			t.Errorf("expected date unchanged, got %s", updated.Date)
		}
	})

	t.Run("type_change_without_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		tx := testutil.CreateTestExpense(t, db, "Refunds", 30, "2024-03-15")

		income := models.TransactionTypeIncome
		updated, err := svc.UpdateTransaction(tx.ID, TransactionPatch{Type: &income})
		testutil.AssertNoError(t, err)

		if updated.Type != models.TransactionTypeIncome {
			t.Errorf("expected type income, got %s", updated.Type)
		}
		if updated.Amount != 30 {
			t.Errorf("expected amount unchanged, got %v", updated.Amount)
		}
	})

	t.Run("invalid_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		tx := testutil.CreateTestExpense(t, db, "Groceries", 50, "2024-03-15")

		amount := -1.0
		_, err := svc.UpdateTransaction(tx.ID, TransactionPatch{Amount: &amount})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		amount := 10.0
		_, err := svc.UpdateTransaction(9999, TransactionPatch{Amount: &amount})
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("deletes_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		tx := testutil.CreateTestExpense(t, db, "Groceries", 50, "2024-03-15")

		testutil.AssertNoError(t, svc.DeleteTransaction(tx.ID))

		_, err := svc.GetTransactionByID(tx.ID)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")
	})

	t.Run("not_found_leaves_state_unchanged", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		testutil.CreateTestExpense(t, db, "Groceries", 50, "2024-03-15")

		err := svc.DeleteTransaction(9999)
		testutil.AssertAppError(t, err, "TRANSACTION_NOT_FOUND")

		transactions, err := svc.GetTransactions(TransactionFilter{})
		testutil.AssertNoError(t, err)
		if len(transactions) != 1 {
			t.Errorf("expected 1 transaction after failed delete, got %d", len(transactions))
		}
	})
}

func TestGetStats(t *testing.T) {
	t.Run("empty_set_is_all_zeros", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		stats, err := svc.GetStats()
		testutil.AssertNoError(t, err)

		if stats.Income != 0 || stats.Expenses != 0 || stats.Balance != 0 {
			t.Errorf("expected all zeros, got %+v", stats)
		}
	})

	t.Run("balance_is_income_minus_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTransactionService(db)

		testutil.CreateTestIncome(t, db, "Salary", 3000, "2024-03-01")
		testutil.CreateTestIncome(t, db, "Freelance", 500, "2024-03-10")
		testutil.CreateTestExpense(t, db, "Rent", 800, "2024-03-05")
		testutil.CreateTestExpense(t, db, "Groceries", 200, "2024-03-15")

		stats, err := svc.GetStats()
		testutil.AssertNoError(t, err)

		if stats.Income != 3500 {
			t.Errorf("expected income 3500, got %v", stats.Income)
		}
		if stats.Expenses != 1000 {
			t.Errorf("expected expenses 1000, got %v", stats.Expenses)
		}
		if stats.Balance != 2500 {
			t.Errorf("expected balance 2500, got %v", stats.Balance)
		}
	})
}
