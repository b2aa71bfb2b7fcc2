package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/money"
)

// TransferHandler moves funds between categories
type TransferHandler struct {
	ledger *budgeting.Budgeting
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(ledger *budgeting.Budgeting) *TransferHandler {
	return &TransferHandler{ledger: ledger}
}

// CreateTransfer moves an amount from one category to another
// @Router /transfers [post]
func (h *TransferHandler) CreateTransfer(c echo.Context) error {
	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	amount, err := money.Parse(req.Amount)
	if err != nil {
		return SendError(c, errors.TransferInvalidAmount, errors.WithDetails(err.Error()))
	}

	if err := h.ledger.TransferFunds(req.From, req.To, amount); err != nil {
		return SendLedgerError(c, err)
	}

	resp, err := transferResponse(h.ledger, req.From, req.To)
	if err != nil {
		return SendLedgerError(c, err)
	}
	return c.JSON(http.StatusCreated, SuccessResponse{Data: resp, Message: "Funds transferred"})
}
