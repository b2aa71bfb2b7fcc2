package models

import (
	"github.com/tmahmood/envelop-budget/internal/money"
)

// TransactionModel binds a transaction to the view of its owning category
type TransactionModel struct {
	Transaction Transaction   `json:"transaction"`
	Category    CategoryModel `json:"category"`
}

// NewTransactionModel creates a TransactionModel
func NewTransactionModel(transaction Transaction, category CategoryModel) TransactionModel {
	return TransactionModel{
		Transaction: transaction,
		Category:    category,
	}
}

// CategoryName returns the name of the owning category
func (m TransactionModel) CategoryName() string {
	return m.Category.Name()
}

// IsIncome returns true if the transaction is income
func (m TransactionModel) IsIncome() bool {
	return m.Transaction.IsIncome()
}

// OnlyAmount returns the unsigned amount formatted for display
func (m TransactionModel) OnlyAmount() string {
	return money.Format(money.Abs(m.Transaction.Amount))
}

// DateCreated returns the creation date formatted for display
func (m TransactionModel) DateCreated() string {
	return m.Transaction.DateCreated.Format("2006-01-02")
}
