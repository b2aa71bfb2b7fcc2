package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/services"
)

// ActivityHandler serves the recorded changes of the current budget
type ActivityHandler struct {
	ledger *budgeting.Budgeting
	audit  services.AuditServiceInterface
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(ledger *budgeting.Budgeting, audit services.AuditServiceInterface) *ActivityHandler {
	return &ActivityHandler{ledger: ledger, audit: audit}
}

// ListActivity pages through the current budget's activity, newest first.
// ?action= narrows it to one kind of change.
// @Router /activity [get]
func (h *ActivityHandler) ListActivity(c echo.Context) error {
	var filters dto.ActivityFilters
	if err := c.Bind(&filters); err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid offset or limit"))
	}
	if err := c.Validate(&filters); err != nil {
		return SendValidationError(c, err)
	}

	budget, err := h.ledger.CurrentBudget()
	if err != nil {
		return SendLedgerError(c, err)
	}

	logs, total, err := h.audit.GetBudgetActivity(budget.ID, filters.Action, filters.Offset, filters.PageSize())
	if err != nil {
		return SendLedgerError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewActivityListResponse(logs, total, filters)})
}
