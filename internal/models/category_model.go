package models

import (
	"github.com/shopspring/decimal"

	"github.com/tmahmood/envelop-budget/internal/money"
)

// CategoryModel is a read view of a category computed from the postings that
// reference it. It never owns or mutates the records it was built from.
type CategoryModel struct {
	Category    Category        `json:"category"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	TransferIn  decimal.Decimal `json:"transfer_in"`
	TransferOut decimal.Decimal `json:"transfer_out"`
}

// NewCategoryModel folds the given transactions and transfers into the
// aggregates of category. Postings that do not reference the category are
// ignored, so callers may pass the whole budget's postings.
func NewCategoryModel(category Category, transactions []Transaction, transfers []Transfer) CategoryModel {
	m := CategoryModel{
		Category:    category,
		Income:      decimal.Zero,
		Expense:     decimal.Zero,
		TransferIn:  decimal.Zero,
		TransferOut: decimal.Zero,
	}

	for _, t := range transactions {
		if t.CategoryID != category.ID {
			continue
		}
		if t.IsIncome() {
			m.Income = m.Income.Add(t.Amount)
		} else {
			m.Expense = m.Expense.Add(t.Amount)
		}
	}

	for _, tr := range transfers {
		if tr.ToCategoryID == category.ID {
			m.TransferIn = m.TransferIn.Add(tr.Amount)
		}
		if tr.FromCategoryID == category.ID {
			m.TransferOut = m.TransferOut.Add(tr.Amount)
		}
	}

	m.Income = money.Normalize(m.Income)
	m.Expense = money.Normalize(m.Expense)
	m.TransferIn = money.Normalize(m.TransferIn)
	m.TransferOut = money.Normalize(m.TransferOut)
	return m
}

// ID returns the category ID
func (m CategoryModel) ID() uint {
	return m.Category.ID
}

// Name returns the category name
func (m CategoryModel) Name() string {
	return m.Category.Name
}

// Allocated returns the budgeted amount of the category
func (m CategoryModel) Allocated() decimal.Decimal {
	return m.Category.Allocated
}

// Opening is the money the category holds before any posting. Only the
// Unallocated pool starts with funds; an envelope's allocation is a target.
func (m CategoryModel) Opening() decimal.Decimal {
	if m.Category.IsUnallocated() {
		return m.Category.Allocated
	}
	return decimal.Zero
}

// Balance returns opening + income + expense + transfer_in - transfer_out
func (m CategoryModel) Balance() decimal.Decimal {
	return money.Sum(m.Opening(), m.Income, m.Expense, m.TransferIn, m.TransferOut.Neg())
}

// Shortfall returns how much is missing for the balance to reach the
// allocation. Zero or negative means the category is funded.
func (m CategoryModel) Shortfall() decimal.Decimal {
	return money.Normalize(m.Category.Allocated.Sub(m.Balance()))
}

// IsFunded reports whether the balance already covers the allocation
func (m CategoryModel) IsFunded() bool {
	return m.Balance().GreaterThanOrEqual(m.Category.Allocated)
}

// TotalIncome returns the sum of income postings
func (m CategoryModel) TotalIncome() decimal.Decimal {
	return m.Income
}

// TotalExpense returns the sum of expense postings as a positive value
func (m CategoryModel) TotalExpense() decimal.Decimal {
	return money.Abs(m.Expense)
}

// TotalTransferIn returns the sum of transfers into the category
func (m CategoryModel) TotalTransferIn() decimal.Decimal {
	return m.TransferIn
}

// TotalTransferOut returns the sum of transfers out of the category as a positive value
func (m CategoryModel) TotalTransferOut() decimal.Decimal {
	return money.Abs(m.TransferOut)
}

// Summary returns the display snapshot of the category
func (m CategoryModel) Summary() SummaryData {
	return SummaryData{
		TransferIn:   m.TotalTransferIn(),
		TransferOut:  m.TotalTransferOut(),
		TotalIncome:  m.TotalIncome(),
		TotalExpense: m.TotalExpense(),
	}
}

// SameCategory reports whether both views describe the same category
func (m CategoryModel) SameCategory(other CategoryModel) bool {
	return m.Category.ID == other.Category.ID
}
