package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrBudgetNameRequired  = errors.New("budget name is required")
	ErrNegativeInitialFund = errors.New("initial amount cannot be negative")
)

// Budget is a named, independently addressable ledger.
type Budget struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	InitialAmount decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"initial_amount"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	return b.Validate()
}

// Validate validates the budget fields
func (b *Budget) Validate() error {
	if b.Name == "" {
		return ErrBudgetNameRequired
	}
	if b.InitialAmount.IsNegative() {
		return ErrNegativeInitialFund
	}
	return nil
}

// TableName returns the table name for Budget
func (b *Budget) TableName() string {
	return "budgets"
}
