package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrInvalidTransferAmount = errors.New("transfer amount must be positive")
	ErrSameCategoryTransfer  = errors.New("from and to categories cannot be the same")
)

// Transfer moves funds between two categories of the same budget. One row is
// both the source's transfer-out and the destination's transfer-in posting.
type Transfer struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	BudgetID       uint            `gorm:"not null;index" json:"budget_id"`
	FromCategoryID uint            `gorm:"not null;index:idx_transfer_from_category" json:"from_category_id"`
	ToCategoryID   uint            `gorm:"not null;index:idx_transfer_to_category" json:"to_category_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Note           string          `gorm:"type:text" json:"note"`
	Reference      string          `gorm:"type:varchar(100);uniqueIndex" json:"reference"`
	CreatedAt      time.Time       `gorm:"not null;index" json:"created_at"`
}

// BeforeCreate hook for Transfer
func (t *Transfer) BeforeCreate(tx *gorm.DB) error {
	if t.Reference == "" {
		t.Reference = GenerateTransferReference()
	}
	return t.Validate()
}

// Validate validates the transfer fields
func (t *Transfer) Validate() error {
	if t.BudgetID == 0 {
		return ErrBudgetIDRequired
	}
	if t.FromCategoryID == 0 || t.ToCategoryID == 0 {
		return ErrCategoryIDRequired
	}
	if t.FromCategoryID == t.ToCategoryID {
		return ErrSameCategoryTransfer
	}
	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidTransferAmount
	}
	return nil
}

// Involves reports whether the transfer touches the given category
func (t *Transfer) Involves(categoryID uint) bool {
	return t.FromCategoryID == categoryID || t.ToCategoryID == categoryID
}

// TableName returns the table name for Transfer
func (t *Transfer) TableName() string {
	return "transfers"
}

// GenerateTransferReference generates a unique transfer reference
func GenerateTransferReference() string {
	return "TRF-" + uuid.New().String()[:8] + "-" + time.Now().Format("20060102150405")
}
