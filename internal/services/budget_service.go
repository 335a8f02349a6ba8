package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	apperrors "mybudget/internal/errors"
	"mybudget/internal/models"
)

// Alert thresholds, in percent of the budget limit.
const (
	warningThreshold = 80
	dangerThreshold  = 100
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db *gorm.DB
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB) BudgetServicer {
	return &budgetService{db: db}
}

// CreateBudget creates a budget for a category and calendar month. Creation
// fails with DUPLICATE_BUDGET when a budget for the same (category, month,
// year) already exists; the existing row is left untouched.
func (s *budgetService) CreateBudget(category string, limit float64, month, year int) (*models.Budget, error) {
	category = strings.TrimSpace(category)

	var invalid []string
	if category == "" {
		invalid = append(invalid, "category")
	}
	if limit <= 0 {
		invalid = append(invalid, "limit")
	}
	if month < 1 || month > 12 {
		invalid = append(invalid, "month")
	}
	if year < 2000 {
		invalid = append(invalid, "year")
	}
	if len(invalid) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
			"missing or invalid field(s): "+strings.Join(invalid, ", "))
	}

	var existing models.Budget
	err := s.db.Where("category = ? AND month = ? AND year = ?", category, month, year).First(&existing).Error
	if err == nil {
		return nil, apperrors.ErrDuplicateBudget
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	budget := &models.Budget{
		Category: category,
		Limit:    limit,
		Month:    month,
		Year:     year,
	}

	if err := s.db.Create(budget).Error; err != nil {
		// A concurrent insert can still trip the unique index between the
		// check and the write.
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateBudget
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

// GetBudgets returns budgets matching the optional month and year filters,
// ordered by period, newest first.
func (s *budgetService) GetBudgets(month, year *int) ([]models.Budget, error) {
	base := s.db.Model(&models.Budget{})
	if month != nil {
		base = base.Where("month = ?", *month)
	}
	if year != nil {
		base = base.Where("year = ?", *year)
	}

	var budgets []models.Budget
	if err := base.Order("year DESC, month DESC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if budgets == nil {
		budgets = []models.Budget{}
	}
	return budgets, nil
}

// GetBudgetByID returns a budget by ID.
func (s *budgetService) GetBudgetByID(id uint) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudgetLimit replaces a budget's limit. No other field is mutable.
func (s *budgetService) UpdateBudgetLimit(id uint, limit float64) (*models.Budget, error) {
	if limit <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must be greater than zero")
	}

	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(budget).Update("limit_amount", limit).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	budget.Limit = limit

	return budget, nil
}

// DeleteBudget removes a budget by ID.
func (s *budgetService) DeleteBudget(id uint) error {
	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetBudgetSummary computes spending against a budget for its calendar
// month. The window is [first day of month, first day of next month); a
// transaction dated on the end boundary belongs to the next month.
func (s *budgetService) GetBudgetSummary(id uint) (*models.BudgetSummary, error) {
	budget, err := s.GetBudgetByID(id)
	if err != nil {
		return nil, err
	}

	start, end := monthWindow(budget.Month, budget.Year)

	var spent float64
	err = s.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("category = ? AND type = ? AND date >= ? AND date < ?",
			budget.Category, models.TransactionTypeExpense, start, end).
		Scan(&spent).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Validation forbids a zero limit, but a row written outside the API
	// could carry one; report 0% rather than dividing by zero.
	var percentage float64
	if budget.Limit > 0 {
		percentage = roundTwoDecimals(spent / budget.Limit * 100)
	}

	alert := models.AlertNone
	switch {
	case percentage >= dangerThreshold:
		alert = models.AlertDanger
	case percentage >= warningThreshold:
		alert = models.AlertWarning
	}

	return &models.BudgetSummary{
		Budget:     *budget,
		Spent:      spent,
		Remaining:  budget.Limit - spent,
		Percentage: percentage,
		Alert:      alert,
	}, nil
}

// monthWindow returns the inclusive start and exclusive end dates of a
// calendar month in YYYY-MM-DD form, rolling the year forward at December.
func monthWindow(month, year int) (start, end string) {
	start = fmt.Sprintf("%04d-%02d-01", year, month)
	if month == 12 {
		end = fmt.Sprintf("%04d-01-01", year+1)
	} else {
		end = fmt.Sprintf("%04d-%02d-01", year, month+1)
	}
	return start, end
}

func roundTwoDecimals(v float64) float64 {
	return math.Round(v*100) / 100
}

// isUniqueViolation reports whether err is a uniqueness-constraint error
// from either supported driver.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
