package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "mybudget/internal/errors"
	"mybudget/internal/models"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction records a new income or expense entry. The amount must
// be strictly positive; direction is carried by txType alone.
func (s *transactionService) CreateTransaction(
	category string,
	amount float64,
	txType models.TransactionType,
	description, date string,
) (*models.Transaction, error) {
	var invalid []string
	if strings.TrimSpace(category) == "" {
		invalid = append(invalid, "category")
	}
	if amount <= 0 {
		invalid = append(invalid, "amount")
	}
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		invalid = append(invalid, "type")
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		invalid = append(invalid, "date")
	}
	if len(invalid) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"missing or invalid field(s): "+strings.Join(invalid, ", "))
	}

	transaction := &models.Transaction{
		Category:    category,
		Amount:      amount,
		Type:        txType,
		Description: description,
		Date:        date,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// GetTransactions returns transactions matching the filter, most recent
// first. Equal dates fall back to id order so the result is deterministic.
func (s *transactionService) GetTransactions(filter TransactionFilter) ([]models.Transaction, error) {
	base := s.db.Model(&models.Transaction{})
	if filter.Category != "" {
		base = base.Where("category = ?", filter.Category)
	}
	if filter.Type != nil {
		base = base.Where("type = ?", *filter.Type)
	}
	if filter.DateFrom != "" {
		base = base.Where("date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		base = base.Where("date <= ?", filter.DateTo)
	}

	var transactions []models.Transaction
	if err := base.Order("date DESC, id DESC").Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return transactions, nil
}

// GetTransactionByID returns a transaction by ID.
func (s *transactionService) GetTransactionByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial update. Only non-nil patch fields
// change; amount and type are independent because the direction is stored,
// not derived from sign.
func (s *transactionService) UpdateTransaction(id uint, patch TransactionPatch) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Category != nil {
		if strings.TrimSpace(*patch.Category) == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category cannot be empty")
		}
		updates["category"] = *patch.Category
	}
	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		updates["amount"] = *patch.Amount
	}
	if patch.Type != nil {
		if *patch.Type != models.TransactionTypeIncome && *patch.Type != models.TransactionTypeExpense {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be 'income' or 'expense'")
		}
		updates["type"] = *patch.Type
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Date != nil {
		if _, err := time.Parse(models.DateLayout, *patch.Date); err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be in YYYY-MM-DD form")
		}
		updates["date"] = *patch.Date
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return transaction, nil
}

// DeleteTransaction removes a transaction by ID.
func (s *transactionService) DeleteTransaction(id uint) error {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetStats computes global income and expense totals from a full scan.
// Balance is income minus expenses; an empty table yields all zeros.
func (s *transactionService) GetStats() (*models.Stats, error) {
	var income, expenses float64

	err := s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ?", models.TransactionTypeIncome).
		Scan(&income).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err = s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ?", models.TransactionTypeExpense).
		Scan(&expenses).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &models.Stats{
		Income:   income,
		Expenses: expenses,
		Balance:  income - expenses,
	}, nil
}
