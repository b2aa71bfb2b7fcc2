package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
)

// TransactionHandler handles posting and listing transactions
type TransactionHandler struct {
	ledger *budgeting.Budgeting
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(ledger *budgeting.Budgeting) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// ListTransactions lists transactions of the current budget, newest first.
// ?category_id= narrows the list to one category.
// @Router /transactions [get]
func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	var filters dto.TransactionFilters
	if err := c.Bind(&filters); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid category_id"))
	}

	var (
		transactions []models.Transaction
		err          error
	)
	if filters.CategoryID != 0 {
		transactions, err = h.ledger.CategoryTransactions(filters.CategoryID)
	} else {
		transactions, err = h.ledger.Transactions()
	}
	if err != nil {
		return SendLedgerError(c, err)
	}

	names, err := categoryNames(h.ledger)
	if err != nil {
		return SendLedgerError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewTransactionListResponse(transactions, names)})
}

// CreateTransaction posts an income or expense to a category
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		return SendError(c, errors.TransactionInvalidAmount, errors.WithDetails(err.Error()))
	}

	tb := h.ledger.NewTransactionToCategory(req.Category).
		Payee(req.Payee).
		Note(req.Note)
	if req.Date != nil {
		tb = tb.DateCreated(*req.Date)
	}
	if strings.EqualFold(req.Type, dto.TransactionTypeIncome) {
		tb = tb.Income(amount)
	} else {
		tb = tb.Expense(amount)
	}

	transaction, err := tb.Done()
	if err != nil {
		return SendLedgerError(c, err)
	}

	names, err := categoryNames(h.ledger)
	if err != nil {
		return SendLedgerError(c, err)
	}
	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    dto.NewTransactionResponse(*transaction, names),
		Message: "Transaction posted",
	})
}
