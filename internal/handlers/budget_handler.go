package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/dto"
	"github.com/tmahmood/envelop-budget/internal/errors"
	"github.com/tmahmood/envelop-budget/internal/money"
)

// BudgetHandler handles budget selection and creation
type BudgetHandler struct {
	ledger *budgeting.Budgeting
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(ledger *budgeting.Budgeting) *BudgetHandler {
	return &BudgetHandler{ledger: ledger}
}

// ListBudgets lists every stored budget and marks the current one
// @Router /budgets [get]
func (h *BudgetHandler) ListBudgets(c echo.Context) error {
	budgets, err := h.ledger.Budgets()
	if err != nil {
		return SendLedgerError(c, err)
	}

	var currentID uint
	if current, err := h.ledger.CurrentBudget(); err == nil {
		currentID = current.ID
	} else if !stderrors.Is(err, budgeting.ErrNoCurrentBudget) {
		return SendLedgerError(c, err)
	}

	resp := dto.BudgetListResponse{Budgets: make([]dto.BudgetResponse, 0, len(budgets))}
	for _, b := range budgets {
		resp.Budgets = append(resp.Budgets, dto.NewBudgetResponse(b, currentID))
	}
	resp.Total = len(resp.Budgets)

	return c.JSON(http.StatusOK, SuccessResponse{Data: resp})
}

// CreateBudget opens a new budget and makes it current
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	var req dto.CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	initial := decimal.Zero
	if req.InitialAmount != "" {
		var err error
		initial, err = money.Parse(req.InitialAmount)
		if err != nil {
			return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid initial amount"))
		}
	}

	if err := h.ledger.NewBudget(req.Name, initial); err != nil {
		return SendLedgerError(c, err)
	}
	return h.respondCurrent(c, http.StatusCreated, "Budget created")
}

// CurrentBudget returns the budget every other endpoint works on
// @Router /budgets/current [get]
func (h *BudgetHandler) CurrentBudget(c echo.Context) error {
	return h.respondCurrent(c, http.StatusOK, "")
}

// SelectBudget switches the current budget
// @Router /budgets/current [put]
func (h *BudgetHandler) SelectBudget(c echo.Context) error {
	var req dto.SelectBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return SendValidationError(c, err)
	}

	if err := h.ledger.SetCurrentBudget(req.Name); err != nil {
		return SendLedgerError(c, err)
	}
	return h.respondCurrent(c, http.StatusOK, "Budget selected")
}

func (h *BudgetHandler) respondCurrent(c echo.Context, status int, message string) error {
	current, err := h.ledger.CurrentBudget()
	if err != nil {
		return SendLedgerError(c, err)
	}
	return c.JSON(status, SuccessResponse{
		Data:    dto.NewBudgetResponse(*current, current.ID),
		Message: message,
	})
}
