package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/dto"
)

// SummaryHandler serves the budget overview
type SummaryHandler struct {
	ledger *budgeting.Budgeting
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(ledger *budgeting.Budgeting) *SummaryHandler {
	return &SummaryHandler{ledger: ledger}
}

// GetSummary returns every aggregate of the current budget in one snapshot
// @Router /summary [get]
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	overview, err := h.ledger.Overview()
	if err != nil {
		return SendLedgerError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewSummaryResponse(overview)})
}
