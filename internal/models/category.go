package models

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Distinguished category names. Every budget owns exactly one of each.
const (
	UnallocatedCategory = "Unallocated"
	DefaultCategory     = "Uncategorized"
)

// Category kinds
const (
	CategoryKindUnallocated   = "unallocated"
	CategoryKindUncategorized = "uncategorized"
	CategoryKindEnvelope      = "envelope"
)

const maxCategoryNameLength = 100

var (
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTooLong  = errors.New("category name too long")
	ErrNegativeAllocation   = errors.New("allocated amount cannot be negative")
	ErrInvalidCategoryKind  = errors.New("invalid category kind")
)

// Category is a named allocation bucket inside a budget.
//
// For envelopes Allocated is the amount budgeted for the category. For the
// Unallocated pool it is the money the budget was opened with.
type Category struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	BudgetID  uint            `gorm:"not null;uniqueIndex:idx_categories_budget_name" json:"budget_id"`
	Name      string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_budget_name" json:"name"`
	Allocated decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"allocated"`
	Kind      string          `gorm:"type:varchar(20);not null;default:'envelope'" json:"kind"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook for Category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.Kind == "" {
		c.Kind = CategoryKindEnvelope
	}
	c.Name = strings.TrimSpace(c.Name)
	return c.Validate()
}

// BeforeUpdate hook for Category
func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	return c.Validate()
}

// Validate validates the category fields
func (c *Category) Validate() error {
	if c.Name == "" {
		return ErrCategoryNameRequired
	}
	if utf8.RuneCountInString(c.Name) > maxCategoryNameLength {
		return ErrCategoryNameTooLong
	}
	if c.Allocated.IsNegative() {
		return ErrNegativeAllocation
	}
	if !IsValidCategoryKind(c.Kind) {
		return ErrInvalidCategoryKind
	}
	return nil
}

// IsUnallocated reports whether c is the budget's Unallocated pool
func (c *Category) IsUnallocated() bool {
	return c.Kind == CategoryKindUnallocated
}

// IsUncategorized reports whether c is the budget's default category
func (c *Category) IsUncategorized() bool {
	return c.Kind == CategoryKindUncategorized
}

// IsDistinguished reports whether c is one of the two built-in categories
func (c *Category) IsDistinguished() bool {
	return c.IsUnallocated() || c.IsUncategorized()
}

// TableName returns the table name for Category
func (c *Category) TableName() string {
	return "categories"
}

// IsValidCategoryKind checks if a category kind is valid
func IsValidCategoryKind(kind string) bool {
	switch kind {
	case CategoryKindUnallocated, CategoryKindUncategorized, CategoryKindEnvelope:
		return true
	default:
		return false
	}
}
