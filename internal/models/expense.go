package models

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/expensetracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense represents a single expense of a user.
//
// The owner is set once when the expense is created and is never
// reassigned afterwards.
type Expense struct {
	DefaultModel
	Date        time.Time       `json:"date" gorm:"index:idx_expenses_date_owner,priority:1"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Category    string          `json:"category" gorm:"index:idx_expenses_category_owner,priority:1"`
	Description string          `json:"description"`
	OwnerID     uuid.UUID       `json:"ownerId" gorm:"index:idx_expenses_date_owner,priority:2;index:idx_expenses_category_owner,priority:2"`
	Owner       User            `json:"-"`
}

// validate checks the user configurable fields of the expense.
func (e Expense) validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrCategoryRequired
	}

	if e.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if utf8.RuneCountInString(e.Description) > 100 {
		return ErrDescriptionTooLong
	}

	return nil
}

// BeforeSave normalizes the expense.
//
// It trims whitespace from all strings and sets the timezone
// for the date to UTC, defaulting to the current time when no
// date is set.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Category = strings.TrimSpace(e.Category)
	e.Description = strings.TrimSpace(e.Description)

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return nil
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	_ = e.DefaultModel.BeforeCreate(tx)

	return e.validate()
}

// BeforeUpdate verifies the state of the expense before
// committing an update to the database.
func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Expense)

	if tx.Statement.Changed("Amount") && toSave.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if tx.Statement.Changed("Category") && strings.TrimSpace(toSave.Category) == "" {
		return ErrCategoryRequired
	}

	if tx.Statement.Changed("Description") && utf8.RuneCountInString(strings.TrimSpace(toSave.Description)) > 100 {
		return ErrDescriptionTooLong
	}

	return nil
}

// AfterFind updates the date to use UTC as timezone, not +0000.
// See DefaultModel.AfterFind for details.
func (e *Expense) AfterFind(tx *gorm.DB) error {
	_ = e.DefaultModel.AfterFind(tx)

	e.Date = e.Date.In(time.UTC)
	return nil
}

// ExpensesInMonth returns all expenses of the owner with a date in the
// month, ordered by date descending.
//
// The range is inclusive on both ends, from the first instant of the
// month to its last second.
func ExpensesInMonth(db *gorm.DB, ownerID uuid.UUID, month types.Month) ([]Expense, error) {
	expenses := make([]Expense, 0)

	err := db.
		Where(&Expense{OwnerID: ownerID}).
		Where("datetime(expenses.date) >= datetime(?)", month.StartTime()).
		Where("datetime(expenses.date) <= datetime(?)", month.EndTime()).
		Order("datetime(expenses.date) DESC, datetime(expenses.created_at) DESC").
		Find(&expenses).Error

	return expenses, err
}

// CategoryTotal is the sum of all expense amounts for a single category.
type CategoryTotal struct {
	Category string          `json:"category" example:"Food"`
	Total    decimal.Decimal `json:"total" example:"74.23"`
}

// CategorySummary sums the expenses of the owner per category over the
// month, ordered by total descending. Grouping and summation happen in
// a single query.
func CategorySummary(db *gorm.DB, ownerID uuid.UUID, month types.Month) ([]CategoryTotal, error) {
	totals := make([]CategoryTotal, 0)

	err := db.
		Model(&Expense{}).
		Select("category, SUM(amount) as total").
		Where(&Expense{OwnerID: ownerID}).
		Where("datetime(expenses.date) >= datetime(?)", month.StartTime()).
		Where("datetime(expenses.date) <= datetime(?)", month.EndTime()).
		Group("category").
		Order("total DESC").
		Find(&totals).Error

	return totals, err
}
