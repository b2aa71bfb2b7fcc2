package dto

import (
	"github.com/tmahmood/envelop-budget/internal/budgeting"
	"github.com/tmahmood/envelop-budget/internal/money"
)

// SummaryResponse is the budget overview shown on the dashboard
type SummaryResponse struct {
	Budget               BudgetResponse     `json:"budget"`
	ActualTotalBalance   string             `json:"actual_total_balance"`
	UnallocatedBalance   string             `json:"unallocated_balance"`
	UncategorizedBalance string             `json:"uncategorized_balance"`
	TotalAllocated       string             `json:"total_allocated"`
	TotalIncome          string             `json:"total_income"`
	TotalExpense         string             `json:"total_expense"`
	Summary              CategorySummary    `json:"summary"`
	Categories           []CategoryResponse `json:"categories"`
}

// NewSummaryResponse converts an overview snapshot
func NewSummaryResponse(o *budgeting.Overview) SummaryResponse {
	return SummaryResponse{
		Budget:               NewBudgetResponse(o.Budget, o.Budget.ID),
		ActualTotalBalance:   money.Format(o.ActualTotalBalance),
		UnallocatedBalance:   money.Format(o.UnallocatedBalance),
		UncategorizedBalance: money.Format(o.UncategorizedBalance),
		TotalAllocated:       money.Format(o.TotalAllocated),
		TotalIncome:          money.Format(o.TotalIncome),
		TotalExpense:         money.Format(o.TotalExpense),
		Summary:              NewCategorySummary(o.Summary),
		Categories:           NewCategoryListResponse(o.Categories).Categories,
	}
}
