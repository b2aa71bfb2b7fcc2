package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrZeroAmount         = errors.New("transaction amount cannot be zero")
	ErrCategoryIDRequired = errors.New("category ID is required")
	ErrBudgetIDRequired   = errors.New("budget ID is required")
)

// Transaction is a monetary movement posted to a category. Positive amounts
// are income, negative amounts are expenses.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	BudgetID    uint            `gorm:"not null;index" json:"budget_id"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Payee       string          `gorm:"type:varchar(255)" json:"payee"`
	Note        string          `gorm:"type:text" json:"note"`
	DateCreated time.Time       `gorm:"not null;index" json:"date_created"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.DateCreated.IsZero() {
		t.DateCreated = time.Now()
	}
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.BudgetID == 0 {
		return ErrBudgetIDRequired
	}
	if t.CategoryID == 0 {
		return ErrCategoryIDRequired
	}
	if t.Amount.IsZero() {
		return ErrZeroAmount
	}
	return nil
}

// IsIncome returns true if the transaction adds money to its category
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense returns true if the transaction takes money out of its category
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// SetAmount replaces the amount. Only fixtures use this; the ledger never
// mutates a posted transaction.
func (t *Transaction) SetAmount(amount decimal.Decimal) {
	t.Amount = amount
}

// SetNote replaces the note.
func (t *Transaction) SetNote(note string) {
	t.Note = note
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}
