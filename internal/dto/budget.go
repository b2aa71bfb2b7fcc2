package dto

import (
	"time"

	"github.com/tmahmood/envelop-budget/internal/models"
	"github.com/tmahmood/envelop-budget/internal/money"
)

// Budget Request DTOs

// CreateBudgetRequest represents the request payload for opening a new budget
type CreateBudgetRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	InitialAmount string `json:"initial_amount" validate:"omitempty,numeric,max_amount"`
}

// SelectBudgetRequest switches the budget every other endpoint works on
type SelectBudgetRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// Budget Response DTOs

// BudgetResponse represents a single budget in API responses
type BudgetResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	InitialAmount string    `json:"initial_amount"`
	Current       bool      `json:"current"`
	CreatedAt     time.Time `json:"created_at"`
}

// BudgetListResponse lists every stored budget
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
	Total   int              `json:"total"`
}

// NewBudgetResponse converts a budget model. current is the ID of the active
// budget, zero when none is selected.
func NewBudgetResponse(b models.Budget, current uint) BudgetResponse {
	return BudgetResponse{
		ID:            b.ID,
		Name:          b.Name,
		InitialAmount: money.Format(b.InitialAmount),
		Current:       current != 0 && b.ID == current,
		CreatedAt:     b.CreatedAt,
	}
}
