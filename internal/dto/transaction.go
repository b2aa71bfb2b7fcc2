package dto

import (
	"time"

	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
)

// Transaction type values accepted by CreateTransactionRequest
const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

// CreateTransactionRequest represents the request payload for posting a
// transaction. An empty or unknown category posts to Uncategorized.
type CreateTransactionRequest struct {
	Category string     `json:"category" validate:"max=100"`
	Type     string     `json:"type" validate:"required,transaction_type"`
	Amount   string     `json:"amount" validate:"required,money_amount,max_amount"`
	Payee    string     `json:"payee" validate:"max=255"`
	Note     string     `json:"note" validate:"max=1000"`
	Date     *time.Time `json:"date,omitempty"`
}

// TransactionFilters narrows a transaction listing
type TransactionFilters struct {
	CategoryID uint `query:"category_id"`
}

// TransactionResponse represents a single transaction in API responses.
// Amount is signed; Income tells the two kinds apart without parsing it.
type TransactionResponse struct {
	ID           uint      `json:"id"`
	CategoryID   uint      `json:"category_id"`
	CategoryName string    `json:"category_name"`
	Amount       string    `json:"amount"`
	Income       bool      `json:"income"`
	Payee        string    `json:"payee"`
	Note         string    `json:"note"`
	DateCreated  time.Time `json:"date_created"`
}

// TransactionListResponse lists transactions newest first
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

// NewTransactionResponse converts a transaction. names maps category IDs to
// their names; a missing entry leaves CategoryName empty.
func NewTransactionResponse(t models.Transaction, names map[uint]string) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		CategoryID:   t.CategoryID,
		CategoryName: names[t.CategoryID],
		Amount:       money.Format(t.Amount),
		Income:       t.IsIncome(),
		Payee:        t.Payee,
		Note:         t.Note,
		DateCreated:  t.DateCreated,
	}
}

// NewTransactionListResponse converts transactions in the order given
func NewTransactionListResponse(transactions []models.Transaction, names map[uint]string) TransactionListResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, NewTransactionResponse(t, names))
	}
	return TransactionListResponse{Transactions: out, Total: len(out)}
}
